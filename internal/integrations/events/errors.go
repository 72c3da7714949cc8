package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: connect to broker")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: marshal payload")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("events: publish")
)
