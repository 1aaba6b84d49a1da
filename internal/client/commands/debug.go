package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/INDA23PlusPlus/redkar-chess/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Set API base URL",
		Usage:       "url [apiUrl]",
		Handler:     urlHandler,
	})

	r.Register(&Command{
		Name:        "raw",
		ShortName:   ":",
		Description: "Send raw API request",
		Usage:       "raw <method> <path> [json-body]",
		Handler:     rawRequestHandler,
	})

	r.Register(&Command{
		Name:        "clear",
		ShortName:   "-",
		Description: "Clear screen",
		Usage:       "clear",
		Handler:     clearHandler,
	})
}

func healthHandler(r *Registry, args []string) error {
	resp, err := r.session.Client.Health()
	if err != nil {
		return err
	}

	display.Printf(r.out, display.Cyan, "Server Health:")
	fmt.Fprintf(r.out, "  Status:  %s\n", resp.Status)
	fmt.Fprintf(r.out, "  Time:    %s\n", time.Unix(resp.Time, 0).Format("2006-01-02 15:04:05"))
	if resp.Storage != "" {
		fmt.Fprintf(r.out, "  Storage: %s\n", resp.Storage)
	}
	return nil
}

func urlHandler(r *Registry, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current API URL: %s\n", r.session.Client.BaseURL)
		return nil
	}

	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	r.session.Client.SetBaseURL(url)

	display.Printf(r.out, display.Cyan, "API URL set to: %s", url)
	return nil
}

func rawRequestHandler(r *Registry, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	method := strings.ToUpper(args[0])
	body := strings.Join(args[2:], " ")

	raw, err := r.session.Client.RawRequest(method, args[1], body)
	if err != nil {
		return err
	}
	if len(raw) > 0 && !r.session.Verbose {
		fmt.Fprintln(r.out, string(raw))
	}
	return nil
}

func clearHandler(r *Registry, args []string) error {
	fmt.Fprint(r.out, "\033[H\033[2J")
	return nil
}
