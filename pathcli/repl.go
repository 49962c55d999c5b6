package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/font/fontcache"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	renderer *Renderer
}

// NewIntp creates an interpreter for renderer r.
func NewIntp(r *Renderer) (*Intp, error) {
	repl, err := readline.New("glyph > ")
	if err != nil {
		return nil, err
	}
	return &Intp{repl: repl, renderer: r}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		quit, err := intp.Execute(context.Background(), line)
		if err != nil {
			tracer().Errorf(err.Error())
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed interactive command.
type Command struct {
	Name string // without the leading colon; empty for text to render
	Arg  string
}

// ParseCommand splits an input line into a command and its argument. Lines
// not starting with a colon are texts to render.
func ParseCommand(line string) Command {
	if !strings.HasPrefix(line, ":") {
		return Command{Arg: TextArg([]string{line})}
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	return Command{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}
}

// Execute runs a single input line. It reports true if the session should
// end.
func (intp *Intp) Execute(ctx context.Context, line string) (bool, error) {
	cmd := ParseCommand(line)
	r := intp.renderer
	switch cmd.Name {
	case "":
		return false, r.Render(ctx, cmd.Arg)
	case "quit", "q":
		return true, nil
	case "stats":
		showStats(r.engine.Cache().Stats())
	case "clear":
		r.engine.Cache().Clear()
		pterm.Info.Println("font cache cleared")
	case "font":
		if _, err := r.engine.Cache().Acquire(ctx, cmd.Arg); err != nil {
			return false, err
		}
		r.opts.Font = cmd.Arg
		pterm.Info.Printfln("font is now %q", cmd.Arg)
	case "format":
		if !isFormat(cmd.Arg) {
			return false, core.Error(core.EINVALID, "unknown output format %q", cmd.Arg)
		}
		r.format = cmd.Arg
	default:
		pterm.Info.Println("commands: :stats :clear :font <key> :format <" +
			strings.Join(formats, "|") + "> :quit")
	}
	return false, nil
}

func showStats(s fontcache.Stats) {
	data := pterm.TableData{{"Font", "Bytes", "Last access", "Source"}}
	for _, e := range s.Entries {
		data = append(data, []string{e.Key, fmt.Sprintf("%d", e.Size),
			e.LastAccessed.Format(time.RFC3339), e.Source})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	usage := s.Usage()
	pterm.Printfln("%d fonts, %d of %d bytes %s %s", s.Count, s.TotalBytes, s.MaxBytes, usage.Bar(20), usage)
}
