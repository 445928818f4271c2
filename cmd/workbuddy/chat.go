package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Akshaya1307/workbuddy/internal/app"
	"github.com/Akshaya1307/workbuddy/internal/model"
)

const chatHelp = `Commands:
  /dashboard   show tickets, onboarding cases and recent workflow logs
  /logs [n]    show the n newest workflow log entries (default: all)
  /actions     list quick actions
  /quick N     send quick action N
  /help        show this help
  /quit        leave the chat`

const prompt = "you › "

// session is one terminal conversation.
type session struct {
	app    *app.App
	convID string
	p      *printer
}

func newSession(ctx context.Context, a *app.App, userID string, p *printer) (*session, error) {
	conv, err := a.Conversations.Create(ctx, &model.CreateConversationRequest{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &session{app: a, convID: conv.ID, p: p}, nil
}

// ask sends one message and prints the reply.
func (s *session) ask(ctx context.Context, text string) error {
	resp, err := s.app.Assistant.HandleMessage(ctx, s.convID, text)
	if err != nil {
		return err
	}
	s.p.reply(&resp.Reply)
	return nil
}

// run reads lines from in until EOF or /quit.
func (s *session) run(ctx context.Context, in io.Reader) error {
	conv, err := s.app.Conversations.Get(ctx, s.convID)
	if err != nil {
		return err
	}
	s.p.title("👋 WorkBuddy")
	s.p.muted(fmt.Sprintf("Signed in as %s. Type /help for commands.", conv.UserID))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.p.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.p.out)
			return scanner.Err()
		}
		quit, err := s.handle(ctx, scanner.Text())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			s.p.fail(err)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one input line, which is either a slash command or a message.
func (s *session) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, s.ask(ctx, line)
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		s.p.muted("Bye!")
		return true, nil

	case "/help":
		s.p.muted(chatHelp)

	case "/dashboard":
		s.p.dashboard(s.app.Dashboard.Snapshot(0))

	case "/logs":
		limit := 0
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				return false, fmt.Errorf("invalid log count %q", fields[1])
			}
			limit = n
		}
		logs := s.app.Dashboard.Logs(limit)
		s.p.title(fmt.Sprintf("Workflow Logs (%d of %d)", len(logs.Entries), logs.Total))
		s.p.markdown(logsMarkdown(logs.Entries))

	case "/actions":
		s.p.title("Quick Actions")
		s.p.markdown(actionsMarkdown(s.app.Catalog.QuickActions))

	case "/quick":
		actions := s.app.Catalog.QuickActions
		if len(fields) < 2 {
			return false, errors.New("usage: /quick N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(actions) {
			return false, fmt.Errorf("quick action must be between 1 and %d", len(actions))
		}
		action := actions[n-1]
		s.p.muted(prompt + action.Prompt)
		return false, s.ask(ctx, action.Prompt)

	default:
		return false, fmt.Errorf("unknown command %s, try /help", fields[0])
	}
	return false, nil
}
