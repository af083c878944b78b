package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/snapdriver/snapreq/packages/define"
	"github.com/snapdriver/snapreq/packages/journal"
	"github.com/snapdriver/snapreq/packages/output"
)

// watchDebounceDelay is the debounce delay for file watch events.
const watchDebounceDelay = 300 * time.Millisecond

var (
	jsonFlag    bool
	selectFlag  string
	journalFlag string
	watchFlag   bool
	noColorFlag bool
	bodyFlag    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.yaml> [file.yaml...]",
	Short: "Build requests from definition files and print them",
	Long: `render loads YAML request definitions, resolves each into a fully
encoded request, and prints the wire bytes (or a JSON summary with --json).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print a JSON summary per request")
	renderCmd.Flags().StringVar(&selectFlag, "select", "", "Extract a field from the JSON summary (gjson path)")
	renderCmd.Flags().StringVar(&journalFlag, "journal", "", "Record rendered requests to a SQLite journal at this path")
	renderCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch definition files for changes and re-render")
	renderCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	renderCmd.Flags().BoolVar(&bodyFlag, "body", false, "Include body bytes in console output")
}

func runRender(cmd *cobra.Command, args []string) error {
	var jrnl *journal.Journal
	if journalFlag != "" {
		var err error
		jrnl, err = journal.Open(journalFlag)
		if err != nil {
			return err
		}
		defer jrnl.Close()
	}

	renderAll := func() error {
		for _, path := range args {
			if err := renderFile(cmd, path, jrnl); err != nil {
				return err
			}
		}
		return nil
	}

	if err := renderAll(); err != nil {
		if !watchFlag {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}

	if !watchFlag {
		return nil
	}
	return watchAndRender(cmd, args, renderAll)
}

func renderFile(cmd *cobra.Command, path string, jrnl *journal.Journal) error {
	defs, err := define.Load(path)
	if err != nil {
		return err
	}

	renderer := output.NewConsoleRenderer(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(noColorFlag),
		output.WithBody(bodyFlag),
	)

	for i, def := range defs {
		builder, err := def.Builder()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		req, err := builder.Build()
		if err != nil {
			return fmt.Errorf("%s: building %q: %w", path, def.Name, err)
		}

		name := def.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", filepath.Base(path), i+1)
		}

		if jrnl != nil {
			if _, err := jrnl.Record(name, req); err != nil {
				return err
			}
		}

		switch {
		case selectFlag != "":
			data, err := output.Summarize(name, req).JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), gjson.GetBytes(data, selectFlag).String())
		case jsonFlag:
			data, err := output.Summarize(name, req).JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		default:
			renderer.Render(name, req)
		}
	}
	return nil
}

func watchAndRender(cmd *cobra.Command, args []string, renderAll func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, path := range args {
		dir := filepath.Dir(path)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to watch %s: %v\n", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && isDefinitionFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n\n", event.Name)
					if err := renderAll(); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					}
				})
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", watchErr)
		}
	}
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
