package pusher

import "errors"

var (
	// ErrMarshalPayload возвращается при ошибке сериализации payload события
	ErrMarshalPayload = errors.New("pusher client: failed to marshal payload")

	// ErrPublish возвращается при ошибке публикации в Redis
	ErrPublish = errors.New("pusher client: failed to publish event")
)
