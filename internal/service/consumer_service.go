package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the archive topic and writes completed analyses
// to the durable archive table.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveAnalysisMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal archive message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	studentId, err := uuid.Parse(payload.StudentId)
	if err != nil {
		log.Printf("[ERROR] Archive message %s carries invalid student id %q: %v", payload.MemoryRefId, payload.StudentId, err)
		msg.Ack()
		return
	}

	createdBy, err := uuid.Parse(payload.CreatedBy)
	if err != nil {
		log.Printf("[ERROR] Archive message %s carries invalid creator id %q: %v", payload.MemoryRefId, payload.CreatedBy, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Archiving analysis %s for student %s", payload.MemoryRefId, payload.StudentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Redelivery after a crash between write and ack would otherwise insert
	// a duplicate row.
	existing, err := uow.AnalysisArchiveRepository().FindByMemoryRef(ctx, payload.MemoryRefId)
	if err != nil {
		log.Printf("[ERROR] Failed to check archive for analysis %s: %v", payload.MemoryRefId, err)
		msg.Nack()
		return
	}
	if existing != nil {
		log.Printf("[INFO] Analysis %s already archived, skipping", payload.MemoryRefId)
		msg.Ack()
		return
	}

	createdAt := payload.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	archive := &entity.AnalysisArchive{
		Id:                  uuid.New(),
		MemoryRefId:         payload.MemoryRefId,
		StudentId:           studentId,
		Analysis:            payload.Analysis,
		ConversationHistory: payload.ConversationHistory,
		CreatedBy:           createdBy,
		CreatedAt:           createdAt,
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.AnalysisArchiveRepository().Create(ctx, archive); err != nil {
		log.Printf("[ERROR] Failed to archive analysis %s: %v", payload.MemoryRefId, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Analysis archived: %s (archive id %s)", payload.MemoryRefId, archive.Id)
	msg.Ack()
}
