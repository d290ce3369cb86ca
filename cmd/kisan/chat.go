package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/markup"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

const localClientID = "local-terminal"

var (
	authorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64748b"))
	sourcesStyle = lipgloss.NewStyle().Faint(true)
)

func newChatCmd() *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the advisory service in the terminal",
		Long: `Chat with the advisory service in the terminal.

Commands inside the chat:
  /lang <code>   switch language (en, hi, mr)
  /suggest       list suggestions
  /use <n>       send suggestion n
  /quit          leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(zap.WarnLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := a.sessions.Create(cmd.Context(), localClientID)
			if err != nil {
				return err
			}
			if locale != "" {
				session.SetLocale(cmd.Context(), locale)
			}
			return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session)
		},
	}
	cmd.Flags().StringVar(&locale, "lang", "", "Language to chat in")
	return cmd
}

// terminalChat prints new turns of a session as they are appended
type terminalChat struct {
	out      io.Writer
	session  *service.Session
	renderer *markup.TerminalRenderer
	printed  int
}

func runChat(ctx context.Context, in io.Reader, out io.Writer, session *service.Session) error {
	tc := &terminalChat{out: out, session: session, renderer: markup.NewTerminalRenderer()}
	tc.flush()

	scanner := bufio.NewScanner(in)
	for {
		tc.prompt()
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " "); cmd {
		case "/quit", "/exit":
			return nil
		case "/lang":
			session.SetLocale(ctx, arg)
			fmt.Fprintf(out, "%s: %s\n", session.Catalog().T("sidebar.language"), session.Catalog().Name())
		case "/suggest":
			for i, s := range session.Suggestions() {
				fmt.Fprintf(out, "  %d. %s - %s\n", i+1, s.Title, s.Subtitle)
			}
		case "/use":
			n, err := strconv.Atoi(arg)
			if err != nil || !session.UseSuggestion(n-1) {
				continue
			}
			tc.submit(ctx, session.Draft())
		default:
			tc.submit(ctx, line)
		}
	}
	return scanner.Err()
}

func (tc *terminalChat) submit(ctx context.Context, query string) {
	catalog := tc.session.Catalog()
	if strings.TrimSpace(query) != "" {
		fmt.Fprintln(tc.out, sourcesStyle.Render(catalog.T(i18n.KeyThinking)))
	}
	// The user turn is echoed by the terminal, skip it.
	if tc.session.Submit(ctx, query) {
		tc.printed++
	}
	tc.flush()
}

func (tc *terminalChat) prompt() {
	fmt.Fprintf(tc.out, "%s > ", tc.session.Catalog().T(i18n.KeyYou))
}

func (tc *terminalChat) flush() {
	msgs := tc.session.Messages()
	catalog := tc.session.Catalog()
	for _, msg := range msgs[tc.printed:] {
		turn := service.Present(msg, catalog)

		author := catalog.T(i18n.KeyAssistant)
		if turn.Role == domain.RoleUser {
			author = catalog.T(i18n.KeyYou)
		}
		header := authorStyle.Render(author)
		if turn.Badge != nil {
			header += " " + turn.Badge.Render()
		}
		fmt.Fprintln(tc.out, header)
		fmt.Fprintln(tc.out, tc.renderer.Render(turn.Blocks))
		if len(turn.Sources) > 0 {
			text := catalog.T(i18n.KeySources) + ": " + strings.Join(turn.Sources, ", ")
			fmt.Fprintln(tc.out, sourcesStyle.Render(markup.SanitizeTerminal(text)))
		}
		fmt.Fprintln(tc.out)
	}
	tc.printed = len(msgs)
}
