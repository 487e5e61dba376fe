// Package chat implements the per-account financial assistant. Each account
// owns one chat thread; a question is answered by a completion API fed with a
// plain-text snapshot of the account's finances, and the exchange is
// persisted.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	accountrepo "github.com/pocketfin/pocketfin/pkg/repository/account"
	categoryrepo "github.com/pocketfin/pocketfin/pkg/repository/category"
	chatrepo "github.com/pocketfin/pocketfin/pkg/repository/chat"
	tagrepo "github.com/pocketfin/pocketfin/pkg/repository/tag"
	transactionrepo "github.com/pocketfin/pocketfin/pkg/repository/transaction"
)

// Completer produces one text answer from a system context and a user
// question. Satisfied by infra/ai.Client.
type Completer interface {
	Complete(ctx context.Context, systemContext, question string) (string, error)
}

// Service implements chat business logic.
type Service struct {
	uow       repository.UnitOfWork
	completer Completer
	logger    *slog.Logger
}

// New creates a chat service.
func New(
	uow repository.UnitOfWork,
	completer Completer,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, completer: completer, logger: logger}
}

// Ask answers a question about one of the user's accounts and persists the
// exchange. The completion call happens outside any DB transaction; only the
// message write runs in the unit of work.
func (s *Service) Ask(
	ctx context.Context,
	userID, accountID uint,
	question string,
) (m *dto.MessageRead, err error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrValidation
	}

	var chatID uint
	var systemContext string
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		account, err := ownedAccount(ctx, uow, userID, accountID)
		if err != nil {
			return err
		}
		systemContext, err = buildContext(ctx, uow, account)
		if err != nil {
			return err
		}
		repo, err := chats(uow)
		if err != nil {
			return err
		}
		thread, err := repo.GetOrCreateByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		chatID = thread.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	answer, err := s.completer.Complete(ctx, systemContext, question)
	if err != nil {
		s.logger.Error("Completion call failed", "accountID", accountID, "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := chats(uow)
		if err != nil {
			return err
		}
		m, err = repo.AddMessage(ctx, &dto.MessageCreate{
			ChatID:   chatID,
			Question: question,
			Answer:   answer,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// History returns the account's chat thread with its messages in order.
func (s *Service) History(
	ctx context.Context,
	userID, accountID uint,
) (thread *dto.ChatRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ownedAccount(ctx, uow, userID, accountID); err != nil {
			return err
		}
		repo, err := chats(uow)
		if err != nil {
			return err
		}
		thread, err = repo.GetOrCreateByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

// buildContext renders the account snapshot handed to the completion API:
// category, current balance, and per-tag transaction history.
func buildContext(
	ctx context.Context,
	uow repository.UnitOfWork,
	account *dto.AccountRead,
) (string, error) {
	var b strings.Builder
	b.WriteString("Eres un asistente financiero personal. ")
	b.WriteString("Responde en base a los datos de la cuenta del usuario.\n\n")
	fmt.Fprintf(&b, "Cuenta: %s\n", account.Name)

	crepo, err := categories(uow)
	if err != nil {
		return "", err
	}
	if cat, err := crepo.Get(ctx, account.CategoryID); err != nil {
		return "", err
	} else if cat != nil {
		fmt.Fprintf(&b, "Categoría: %s\n", cat.Tipo)
	}
	fmt.Fprintf(&b, "Saldo actual: %s\n", account.Money.StringFixed(2))

	trepo, err := tags(uow)
	if err != nil {
		return "", err
	}
	tagList, err := trepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return "", err
	}
	txrepo, err := transactions(uow)
	if err != nil {
		return "", err
	}
	for _, tag := range tagList {
		fmt.Fprintf(&b, "\nEtiqueta %q:\n", tag.Name)
		txs, err := txrepo.ListByTag(ctx, tag.ID)
		if err != nil {
			return "", err
		}
		if len(txs) == 0 {
			b.WriteString("  (sin movimientos)\n")
			continue
		}
		for _, tx := range txs {
			kind := "gasto"
			if tx.IsIncome {
				kind = "ingreso"
			}
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				tx.Date.Format("2006-01-02"), kind,
				tx.Amount.StringFixed(2), tx.Description)
		}
	}
	return b.String(), nil
}

func ownedAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, accountID uint,
) (*dto.AccountRead, error) {
	repo, err := accounts(uow)
	if err != nil {
		return nil, err
	}
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func chats(uow repository.UnitOfWork) (chatrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*chatrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(chatrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid chat repository type")
	}
	return repo, nil
}

func accounts(uow repository.UnitOfWork) (accountrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*accountrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(accountrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid account repository type")
	}
	return repo, nil
}

func categories(uow repository.UnitOfWork) (categoryrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*categoryrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(categoryrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid category repository type")
	}
	return repo, nil
}

func tags(uow repository.UnitOfWork) (tagrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*tagrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(tagrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid tag repository type")
	}
	return repo, nil
}

func transactions(uow repository.UnitOfWork) (transactionrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*transactionrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(transactionrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid transaction repository type")
	}
	return repo, nil
}
