package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

func newChatCmd(app *App) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversar con EcoBot",
		Long: "Abre el chat interactivo. En una terminal muestra la interfaz completa; " +
			"con --plain, o si la entrada no es una terminal, usa un intérprete de líneas.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain || !app.interactive() {
				return runPlainChat(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runChatTUI(cmd.Context(), app)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "usar el intérprete de líneas sin interfaz")
	return cmd
}

func runChatTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	view, err := app.Chat.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer func() { _ = app.Chat.End(context.Background(), view.State.ID) }()

	p := tea.NewProgram(newAppModel(app, view.State.ID),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

// runPlainChat is a line REPL. Lines starting with "/" press buttons, by
// number ("/2") or by tag ("/variables"); anything else is a question.
func runPlainChat(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	you := color.New(color.FgGreen, color.Bold).SprintFunc()
	bot := color.New(color.FgMagenta, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	view, err := app.Chat.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	id := view.State.ID
	defer func() { _ = app.Chat.End(context.Background(), id) }()

	content := view.Content
	fmt.Fprintln(out, bot("EcoBot: ")+formatter.PlainMarkdown(chatbot.Greeting))
	printButtons(out, dim, content)
	fmt.Fprintln(out, dim("Escribe /salir para terminar, /menu para ver las opciones."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, you("Tú: "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isQuitWord(line) {
			break
		}
		if line == "/menu" {
			printButtons(out, dim, content)
			continue
		}

		var reply *chatbot.Reply
		if cmd, ok := strings.CutPrefix(line, "/"); ok {
			reply, err = app.Chat.Press(ctx, id, buttonTag(content, cmd))
		} else {
			reply, err = app.Chat.Ask(ctx, id, line)
		}
		if err != nil {
			return err
		}
		prev := content.Stage
		content = reply.Content
		fmt.Fprintln(out, bot("EcoBot: ")+formatter.PlainMarkdown(reply.Message.Text))
		if reply.Kind == chatbot.KindButton || content.Stage != prev {
			printButtons(out, dim, content)
		}
	}
	return scanner.Err()
}

// buttonTag resolves "/n" to the n-th button of the current stage; any other
// text is taken as a tag.
func buttonTag(c chatbot.Content, ref string) string {
	buttons := formatter.ContentButtons(c)
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(buttons) {
		return string(buttons[n-1].Tag)
	}
	return ref
}

func printButtons(out io.Writer, dim func(a ...interface{}) string, c chatbot.Content) {
	for i, b := range formatter.ContentButtons(c) {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("/%d", i+1)), b.Label)
	}
}
