//go:build ignore

// Публикует тестовую заявку в stream:lead:created и ждёт, пока воркер её подтвердит.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LeadCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	LeadID     int64     `json:"lead_id"`
	Name       string    `json:"nombre"`
	Email      string    `json:"email"`
	Phone      *string   `json:"telefono,omitempty"`
	Message    string    `json:"mensaje"`
	TourID     *int64    `json:"tour_id,omitempty"`
	TourTitle  *string   `json:"tour_titulo,omitempty"`
	Locale     string    `json:"idioma"`
	OccurredAt time.Time `json:"occurred_at"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "lead-notification-workers", "Consumer group of the worker")
	locale := flag.String("lang", "es", "Lead locale (es, en)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := LeadCreatedEvent{
		EventID:    uuid.New(),
		LeadID:     time.Now().Unix(),
		Name:       "Ana Lopez",
		Email:      "ana@example.com",
		Phone:      ptr("+52 55 1234 5678"),
		Message:    "Quiero información sobre el viaje a Cancún en diciembre.",
		TourID:     ptr(int64(1)),
		TourTitle:  ptr("Viaje a Cancún"),
		Locale:     *locale,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:lead:created",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: stream:lead:created\n")
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Lead ID: %d\n", event.LeadID)

	fmt.Printf("\nWaiting for group %q to ack the message...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: message still pending or not delivered")
			return
		case <-ticker.C:
			info, err := client.XInfoGroups(ctx, "stream:lead:created").Result()
			if err != nil {
				continue
			}
			for _, g := range info {
				if g.Name != *group {
					continue
				}
				// сообщение доставлено (last-delivered >= id) и снято из pending
				if g.LastDeliveredID >= id && g.Pending == 0 {
					fmt.Println("Message acked by worker")
					return
				}
			}
		}
	}
}
