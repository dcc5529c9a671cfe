package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/clients/sendgrid"
	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/types"
)

// ReflectionService stores an employee's free-text follow-up on a question
// they already answered, then notifies the company's management by mail.
// The mail is best-effort; the reflection row is the source of truth.
type ReflectionService interface {
	CreateReflection(ctx context.Context, userID, sessionID, questionID uuid.UUID, description string) (*types.Reflection, error)
}

type reflectionService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.SessionRepo
	memberRepo     repos.MemberRepo
	questionRepo   repos.QuestionRepo
	answeredRepo   repos.AnsweredRepo
	reflectionRepo repos.ReflectionRepo
	userRepo       repos.UserRepo
	mailRepo       repos.OutboundMailRepo
	mailer         sendgrid.Client
}

func NewReflectionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	memberRepo repos.MemberRepo,
	questionRepo repos.QuestionRepo,
	answeredRepo repos.AnsweredRepo,
	reflectionRepo repos.ReflectionRepo,
	userRepo repos.UserRepo,
	mailRepo repos.OutboundMailRepo,
	mailer sendgrid.Client,
) ReflectionService {
	return &reflectionService{
		db:             db,
		log:            log.With("service", "ReflectionService"),
		sessionRepo:    sessionRepo,
		memberRepo:     memberRepo,
		questionRepo:   questionRepo,
		answeredRepo:   answeredRepo,
		reflectionRepo: reflectionRepo,
		userRepo:       userRepo,
		mailRepo:       mailRepo,
		mailer:         mailer,
	}
}

func (s *reflectionService) CreateReflection(ctx context.Context, userID, sessionID, questionID uuid.UUID, description string) (*types.Reflection, error) {
	if description == "" {
		return nil, fmt.Errorf("description required")
	}

	var reflection *types.Reflection
	var session *types.Session

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		sessions, err := s.sessionRepo.GetByIDs(ctx, tx, []uuid.UUID{sessionID})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if len(sessions) == 0 {
			return ErrNotFound
		}
		session = sessions[0]
		if !sessionAliveAt(session, now) {
			return ErrSessionNotAlive
		}

		member, err := s.memberRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if member == nil {
			return ErrNotFound
		}
		if member.CompanyID != session.CompanyID {
			return ErrCompanyMismatch
		}

		questions, err := s.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{questionID})
		if err != nil {
			return fmt.Errorf("load question: %w", err)
		}
		if len(questions) == 0 {
			return ErrNotFound
		}
		if questions[0].SetID != session.SetID {
			return ErrQuestionNotInSession
		}

		// A reflection refers back to an answer, so the answer must exist.
		answered, err := s.answeredRepo.Exists(ctx, tx, userID, questionID, sessionID)
		if err != nil {
			return fmt.Errorf("check answer record: %w", err)
		}
		if !answered {
			return ErrQuestionNotAnswered
		}

		reflection = &types.Reflection{
			ID:          uuid.New(),
			SessionID:   sessionID,
			AnswererID:  userID,
			QuestionID:  questionID,
			Description: description,
		}
		if _, err := s.reflectionRepo.Create(ctx, tx, []*types.Reflection{reflection}); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateReflection
			}
			return fmt.Errorf("create reflection: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyManagement(ctx, session, reflection)
	return reflection, nil
}

// notifyManagement mails every management member of the session's company.
// Failures are logged on the outbound_mail row and never surface to the
// employee who submitted the reflection.
func (s *reflectionService) notifyManagement(ctx context.Context, session *types.Session, reflection *types.Reflection) {
	if s.mailer == nil {
		return
	}

	managers, err := s.memberRepo.GetByCompanyAndRole(ctx, nil, session.CompanyID, types.RoleManagement)
	if err != nil {
		s.log.Warn("Loading management members failed", "companyID", session.CompanyID, "error", err)
		return
	}
	if len(managers) == 0 {
		return
	}

	userIDs := make([]uuid.UUID, 0, len(managers))
	for _, m := range managers {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, userIDs)
	if err != nil {
		s.log.Warn("Loading management users failed", "companyID", session.CompanyID, "error", err)
		return
	}

	subject := "A new reflection was submitted"
	body := fmt.Sprintf(
		"An employee submitted a reflection during the current session.\n\n%s\n\nOpen the dashboard to follow up.",
		reflection.Description,
	)
	mailCtx, _ := json.Marshal(map[string]any{
		"reflection_id": reflection.ID,
		"session_id":    session.ID,
		"question_id":   reflection.QuestionID,
	})

	for _, user := range users {
		mail := &types.OutboundMail{
			ID:      uuid.New(),
			ToEmail: user.Email,
			Subject: subject,
			Context: datatypes.JSON(mailCtx),
		}
		if _, err := s.mailRepo.Create(ctx, nil, []*types.OutboundMail{mail}); err != nil {
			s.log.Warn("Recording outbound mail failed", "to", user.Email, "error", err)
			continue
		}

		_, sendErr := s.mailer.Send(ctx, sendgrid.SendEmailRequest{
			To:      []sendgrid.EmailAddress{{Email: user.Email, Name: user.FirstName + " " + user.LastName}},
			Subject: subject,
			Text:    body,
		})
		if sendErr != nil {
			s.log.Warn("Reflection mail failed", "to", user.Email, "error", sendErr)
			if err := s.mailRepo.MarkFailed(ctx, nil, mail); err != nil {
				s.log.Warn("Marking mail failed errored", "mailID", mail.ID, "error", err)
			}
			continue
		}
		if err := s.mailRepo.MarkSent(ctx, nil, mail, time.Now().UTC()); err != nil {
			s.log.Warn("Marking mail sent errored", "mailID", mail.ID, "error", err)
		}
	}
}
