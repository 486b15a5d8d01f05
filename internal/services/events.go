package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/streadway/amqp"

	"alfredoptarigan/interview-prep/internal/models"
)

const (
	RoutingInterviewCreated  = "interview.created"
	RoutingFeedbackCompleted = "feedback.completed"
)

type EventPublisher interface {
	PublishInterviewCreated(ctx context.Context, collection string, interview *models.Interview) error
	PublishFeedbackCompleted(ctx context.Context, feedback *models.Feedback) error
	Close() error
}

type InterviewCreatedEvent struct {
	InterviewID string    `json:"interviewId"`
	Collection  string    `json:"collection"`
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	Questions   int       `json:"questions"`
	MCQs        int       `json:"mcqs"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FeedbackCompletedEvent struct {
	FeedbackID  string  `json:"feedbackId"`
	InterviewID string  `json:"interviewId"`
	UserID      string  `json:"userId"`
	TotalScore  float64 `json:"totalScore"`
}

type rabbitPublisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewRabbitPublisher dials url and declares exchange as a durable topic
// exchange.
func NewRabbitPublisher(url, exchange string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &rabbitPublisher{conn: conn, exchange: exchange}, nil
}

func (p *rabbitPublisher) PublishInterviewCreated(_ context.Context, collection string, interview *models.Interview) error {
	return p.publish(RoutingInterviewCreated, InterviewCreatedEvent{
		InterviewID: interview.ID.String(),
		Collection:  collection,
		UserID:      interview.UserID,
		Role:        interview.Role,
		Questions:   len(interview.Questions),
		MCQs:        len(interview.MCQs),
		CreatedAt:   interview.CreatedAt,
	})
}

func (p *rabbitPublisher) PublishFeedbackCompleted(_ context.Context, feedback *models.Feedback) error {
	event := FeedbackCompletedEvent{
		FeedbackID:  feedback.ID.String(),
		InterviewID: feedback.InterviewID.String(),
		UserID:      feedback.UserID,
	}
	if feedback.TotalScore != nil {
		event.TotalScore = *feedback.TotalScore
	}
	return p.publish(RoutingFeedbackCompleted, event)
}

// publish opens a channel per message; channels are not shared between goroutines
func (p *rabbitPublisher) publish(routingKey string, event any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *rabbitPublisher) Close() error {
	return p.conn.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() EventPublisher {
	log.Println("⚠️ RABBITMQ_URL not set, interview events are disabled")
	return noopPublisher{}
}

func (noopPublisher) PublishInterviewCreated(context.Context, string, *models.Interview) error {
	return nil
}

func (noopPublisher) PublishFeedbackCompleted(context.Context, *models.Feedback) error {
	return nil
}

func (noopPublisher) Close() error { return nil }
