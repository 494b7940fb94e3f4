package models

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// Request модели

// CreateTypeRequest запрос на создание типа занятия
type CreateTypeRequest struct {
	TenantID        int64
	Name            string
	Description     *string
	MinParticipants int
	MaxParticipants int
	PricePerPerson  float64
	DurationMinutes int
}

// UpdateTypeRequest запрос на обновление типа занятия
type UpdateTypeRequest struct {
	TenantID        int64
	TypeID          int64
	Name            string
	Description     *string
	MinParticipants int
	MaxParticipants int
	PricePerPerson  float64
	DurationMinutes int
	Active          bool
}

// Response модели

// TypeResponse ответ с данными типа занятия
type TypeResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	MinParticipants int       `json:"minParticipants"`
	MaxParticipants int       `json:"maxParticipants"`
	PricePerPerson  float64   `json:"pricePerPerson"`
	DurationMinutes int       `json:"durationMinutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TypeListResponse ответ со списком типов занятий
type TypeListResponse struct {
	SessionTypes []TypeResponse `json:"sessionTypes"`
}

// Методы конвертации

// ToDomain конвертирует запрос на создание в доменную модель
func (r *CreateTypeRequest) ToDomain() *domain.SessionType {
	return &domain.SessionType{
		TenantID:        r.TenantID,
		Name:            r.Name,
		Description:     r.Description,
		MinParticipants: r.MinParticipants,
		MaxParticipants: r.MaxParticipants,
		PricePerPerson:  r.PricePerPerson,
		DurationMinutes: r.DurationMinutes,
		Active:          true,
	}
}

// FromDomainType конвертирует доменную модель в DTO
func FromDomainType(t *domain.SessionType) *TypeResponse {
	if t == nil {
		return nil
	}

	return &TypeResponse{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		MinParticipants: t.MinParticipants,
		MaxParticipants: t.MaxParticipants,
		PricePerPerson:  t.PricePerPerson,
		DurationMinutes: t.DurationMinutes,
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainTypeList конвертирует список доменных моделей в DTO
func FromDomainTypeList(types []*domain.SessionType) *TypeListResponse {
	resp := &TypeListResponse{
		SessionTypes: make([]TypeResponse, 0, len(types)),
	}

	for _, t := range types {
		if typeResp := FromDomainType(t); typeResp != nil {
			resp.SessionTypes = append(resp.SessionTypes, *typeResp)
		}
	}

	return resp
}
