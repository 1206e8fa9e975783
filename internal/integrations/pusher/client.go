package pusher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event конверт события, публикуемого в канал
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client клиент шлюза уведомлений поверх Redis pub/sub.
// Доставка до конечных подписчиков (websocket-фронт, мобильные клиенты) -
// зона ответственности внешнего realtime-сервиса, читающего эти каналы.
type Client struct {
	rdb *redis.Client
	log Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(addr, password string, db int, log Logger) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{rdb: rdb, log: log}
}

// Ping проверяет соединение с Redis
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Publish публикует событие в канал. Доставка best-effort: вызывающий код
// логирует ошибку и продолжает работу - уведомления не влияют на корректность
// выполненного перехода статуса.
func (c *Client) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	body, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("%w: channel=%s event=%s: %v", ErrMarshalPayload, channel, event, err)
	}

	if err := c.rdb.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s event=%s: %v", ErrPublish, channel, event, err)
	}

	c.log.Info("Published event=%s to channel=%s", event, channel)
	return nil
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
