package domain

import "errors"

var (
	// ErrOrderID — не удалось сгенерировать идентификатор заказа.
	ErrOrderID = errors.New("order id generation failed")
	// ErrEncodeOrder — не удалось сериализовать заказ.
	ErrEncodeOrder = errors.New("order encoding failed")
	// ErrBuildRequest — не удалось собрать исходящий запрос.
	ErrBuildRequest = errors.New("outbound request build failed")
	// ErrSignRequest — не удалось подписать исходящий запрос.
	ErrSignRequest = errors.New("outbound request signing failed")
	// ErrDownstreamUnavailable — сетевая ошибка при обращении к внутреннему API.
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
	// ErrDownstreamRejected — внутренний API ответил не-2xx (в том числе отказ границы авторизации).
	ErrDownstreamRejected = errors.New("downstream rejected request")
	// ErrDownstreamInvalidBody — тело ответа внутреннего API не является JSON.
	ErrDownstreamInvalidBody = errors.New("downstream returned invalid body")
)
