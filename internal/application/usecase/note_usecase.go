package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/barstock/internal/application"
	"github.com/tu-usuario/barstock/internal/application/dto"
	"github.com/tu-usuario/barstock/internal/domain"
	"github.com/tu-usuario/barstock/internal/domain/entity"
	"github.com/tu-usuario/barstock/internal/domain/repository"
	"github.com/tu-usuario/barstock/pkg/logger"
)

// NoteUseCase gestiona las notas libres del usuario.
type NoteUseCase struct {
	noteRepo repository.NoteRepository
	log      *logger.Logger
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(noteRepo repository.NoteRepository, log *logger.Logger) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo, log: log}
}

// Create valida y crea una nota. Prioridad por defecto "media", estado "activa".
func (uc *NoteUseCase) Create(ctx context.Context, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = entity.AlertPriorityMedium
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	note := &entity.Note{
		ID:              uuid.NewString(),
		Title:           application.SanitizeString(req.Title, 100),
		Content:         application.SanitizeString(req.Content, 2000),
		Category:        application.SanitizeString(req.Category, 50),
		Priority:        priority,
		Status:          "activa",
		Tags:            tags,
		RelatedProduct:  application.SanitizeString(req.RelatedProduct, 100),
		RelatedSupplier: application.SanitizeString(req.RelatedSupplier, 100),
		RelatedPurchase: req.RelatedPurchase,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	uc.log.Info().Str("titulo", note.Title).Msg("Nota creada")
	return noteResponse(note), nil
}

// Get devuelve una nota por ID.
func (uc *NoteUseCase) Get(ctx context.Context, id string) (*dto.NoteResponse, error) {
	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return noteResponse(note), nil
}

// List devuelve las notas que cumplen el filtro. Falla de almacén degrada a
// lista vacía.
func (uc *NoteUseCase) List(ctx context.Context, f repository.NoteFilter) []dto.NoteResponse {
	notes, err := uc.noteRepo.List(ctx, f)
	if err != nil {
		uc.log.Error().Err(err).Msg("Error listando notas")
		return []dto.NoteResponse{}
	}

	results := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		results = append(results, *noteResponse(&notes[i]))
	}
	return results
}

// Update actualiza una nota campo a campo.
func (uc *NoteUseCase) Update(ctx context.Context, id string, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := application.ValidateStruct(&req); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != nil {
		note.Title = application.SanitizeString(*req.Title, 100)
	}
	if req.Content != nil {
		note.Content = application.SanitizeString(*req.Content, 2000)
	}
	if req.Category != nil {
		note.Category = application.SanitizeString(*req.Category, 50)
	}
	if req.Priority != nil {
		note.Priority = *req.Priority
	}
	if req.Status != nil {
		note.Status = *req.Status
	}
	if req.Tags != nil {
		note.Tags = req.Tags
	}
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return noteResponse(note), nil
}

// Delete elimina una nota.
func (uc *NoteUseCase) Delete(ctx context.Context, id string) error {
	return uc.noteRepo.Delete(ctx, id)
}

func noteResponse(n *entity.Note) *dto.NoteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		ID:              n.ID,
		Title:           n.Title,
		Content:         n.Content,
		Category:        n.Category,
		Priority:        n.Priority,
		Status:          n.Status,
		Tags:            tags,
		RelatedProduct:  n.RelatedProduct,
		RelatedSupplier: n.RelatedSupplier,
		RelatedPurchase: n.RelatedPurchase,
		CreatedAt:       n.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       n.UpdatedAt.Format(time.RFC3339),
	}
}
