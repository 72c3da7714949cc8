package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// RetryAfterSeconds значение заголовка Retry-After при конкурентной блокировке ресурса
const RetryAfterSeconds = 1

const (
	msgValidation        = "некорректные данные запроса"
	msgInvalidTransition = "недопустимая смена статуса"
	msgNotFound          = "объект не найден"
	msgIncompatible      = "комната или мастер не подходят для услуги"
	msgRoomUnavailable   = "комната занята в выбранное время"
	msgStaffUnavailable  = "мастер занят в выбранное время"
	msgStaffNotScheduled = "мастер не работает в выбранное время"
	msgResourceLocked    = "ресурс заблокирован параллельным бронированием, повторите позже"
)

// StatusFor возвращает HTTP статус для доменной ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIncompatibleResource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRoomUnavailable),
		errors.Is(err, domain.ErrStaffUnavailable),
		errors.Is(err, domain.ErrStaffNotScheduled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrResourceLocked):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отправляет ответ по доменной ошибке
// Сообщение для 400 берется из самой ошибки, остальные статусы получают общий текст
func RespondDomainError(w http.ResponseWriter, err error) {
	switch status := StatusFor(err); status {
	case http.StatusBadRequest:
		if errors.Is(err, domain.ErrInvalidTransition) {
			RespondBadRequest(w, msgInvalidTransition+": "+err.Error())
			return
		}
		RespondBadRequest(w, msgValidation+": "+err.Error())
	case http.StatusNotFound:
		RespondNotFound(w, msgNotFound)
	case http.StatusUnprocessableEntity:
		RespondUnprocessable(w, msgIncompatible)
	case http.StatusConflict:
		RespondConflict(w, conflictMessage(err))
	case http.StatusServiceUnavailable:
		RespondServiceUnavailable(w, msgResourceLocked, RetryAfterSeconds)
	default:
		RespondInternalError(w)
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomUnavailable):
		return msgRoomUnavailable
	case errors.Is(err, domain.ErrStaffUnavailable):
		return msgStaffUnavailable
	default:
		return msgStaffNotScheduled
	}
}
