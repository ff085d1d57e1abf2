package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/domain/chat"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/modules/roadmapgraph"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// ConversationService runs the tutoring threads attached to roadmap nodes
// and catalog challenges. Every turn replays the whole thread.
type ConversationService interface {
	NodeHistory(ctx context.Context, principal, roadmapID uuid.UUID, nodeID string) ([]*domain.ChatMessage, error)
	NodeChat(ctx context.Context, principal, roadmapID uuid.UUID, nodeID, text string) (*domain.ChatMessage, error)
	ChallengeHistory(ctx context.Context, principal, challengeID uuid.UUID) ([]*domain.ChatMessage, error)
	ChallengeChat(ctx context.Context, principal, challengeID uuid.UUID, text string) (*domain.ChatMessage, error)
}

type conversationService struct {
	db            *gorm.DB
	gen           generator
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	challengeRepo repos.ChallengeRepo
	chatRepo      repos.ChatMessageRepo
}

func NewConversationService(
	db *gorm.DB,
	log *logger.Logger,
	provider llm.Provider,
	metrics *observability.Metrics,
	roadmapRepo repos.RoadmapRepo,
	challengeRepo repos.ChallengeRepo,
	chatRepo repos.ChatMessageRepo,
) ConversationService {
	serviceLog := log.With("service", "ConversationService")
	return &conversationService{
		db:            db,
		gen:           generator{llm: provider, log: serviceLog, metrics: metrics},
		log:           serviceLog,
		roadmapRepo:   roadmapRepo,
		challengeRepo: challengeRepo,
		chatRepo:      chatRepo,
	}
}

// thread identifies one conversation and the persona that answers in it.
type thread struct {
	key       string
	roadmapID *uuid.UUID
	persona   prompts.PromptName
	input     prompts.Input
}

// ownedNode resolves a node thread. Chat is only offered on roadmaps the
// principal owns.
func (s *conversationService) ownedNode(ctx context.Context, principal, roadmapID uuid.UUID, nodeID string) (*thread, error) {
	r, err := s.roadmapRepo.GetByID(dbctx.From(ctx), roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if r == nil {
		return nil, domain.NotFound("roadmap")
	}
	if !r.OwnedBy(principal) {
		return nil, domain.Forbidden("roadmap")
	}
	node := roadmapgraph.Find(r.Nodes, nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, nodeID)
	}
	rid := r.ID
	return &thread{
		key:       chat.NodeThread(r.ID, node.NodeID),
		roadmapID: &rid,
		persona:   prompts.PromptNodeTutor,
		input:     prompts.Input{Topic: node.Title},
	}, nil
}

func (s *conversationService) challenge(ctx context.Context, principal, challengeID uuid.UUID) (*thread, error) {
	c, err := s.challengeRepo.GetByID(dbctx.From(ctx), challengeID)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound("challenge")
	}
	return &thread{
		key:     chat.ChallengeThread(c.ID, principal),
		persona: prompts.PromptChallengeGuide,
		input: prompts.Input{
			ChallengeTitle:       c.Title,
			ChallengeDescription: c.Description,
		},
	}, nil
}

func (s *conversationService) NodeHistory(ctx context.Context, principal, roadmapID uuid.UUID, nodeID string) ([]*domain.ChatMessage, error) {
	th, err := s.ownedNode(ctx, principal, roadmapID, nodeID)
	if err != nil {
		return nil, err
	}
	return s.history(ctx, th)
}

func (s *conversationService) NodeChat(ctx context.Context, principal, roadmapID uuid.UUID, nodeID, text string) (*domain.ChatMessage, error) {
	th, err := s.ownedNode(ctx, principal, roadmapID, nodeID)
	if err != nil {
		return nil, err
	}
	return s.turn(ctx, principal, th, text)
}

func (s *conversationService) ChallengeHistory(ctx context.Context, principal, challengeID uuid.UUID) ([]*domain.ChatMessage, error) {
	th, err := s.challenge(ctx, principal, challengeID)
	if err != nil {
		return nil, err
	}
	return s.history(ctx, th)
}

func (s *conversationService) ChallengeChat(ctx context.Context, principal, challengeID uuid.UUID, text string) (*domain.ChatMessage, error) {
	th, err := s.challenge(ctx, principal, challengeID)
	if err != nil {
		return nil, err
	}
	return s.turn(ctx, principal, th, text)
}

func (s *conversationService) history(ctx context.Context, th *thread) ([]*domain.ChatMessage, error) {
	msgs, err := s.chatRepo.ListThread(dbctx.From(ctx), th.key)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}
	return msgs, nil
}

// turn sends the thread plus the new user text to the backend and stores
// the user and AI turns together. Nothing is stored when the backend fails.
func (s *conversationService) turn(ctx context.Context, principal uuid.UUID, th *thread, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Validationf("message text is required")
	}
	past, err := s.history(ctx, th)
	if err != nil {
		return nil, err
	}

	replay := make([]llm.Message, 0, len(past)+1)
	for _, m := range past {
		replay = append(replay, toLLMMessage(m))
	}
	replay = append(replay, llm.Message{Role: llm.RoleUser, Content: text})

	p, err := prompts.Build(th.persona, th.input)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}
	reply, err := s.gen.text(ctx, string(th.persona), p.Conversation(replay))
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{ThreadKey: th.key, RoadmapID: th.roadmapID, UserID: principal, Sender: domain.SenderUser, Text: text}
	aiMsg := &domain.ChatMessage{ThreadKey: th.key, RoadmapID: th.roadmapID, UserID: principal, Sender: domain.SenderAI, Text: strings.TrimSpace(reply)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.chatRepo.Append(dbc, userMsg); err != nil {
			return err
		}
		_, err := s.chatRepo.Append(dbc, aiMsg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("append chat turn: %w", err)
	}
	s.log.Debug("chat turn stored", "thread", th.key, "history_len", len(replay))
	return aiMsg, nil
}

func toLLMMessage(m *domain.ChatMessage) llm.Message {
	role := llm.RoleUser
	if m.Sender == domain.SenderAI {
		role = llm.RoleAssistant
	}
	return llm.Message{Role: role, Content: m.Text}
}
