// submodule cmd contains command definitions
package main

import (
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
)

// setupCommand provisions the config file and database schema
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and provision the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// addCommand persists a new track
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a track with its audio file and optional cover",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Track title (max 50 chars)", Required: true},
			&cli.StringFlag{Name: "artist", Usage: "Artist name", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Optional description (max 200 chars)"},
			&cli.StringFlag{Name: "category", Usage: "One of pop|rock|rap|cha3bi", Required: true},
			&cli.StringFlag{Name: "audio", Usage: "Path to the audio file", Required: true},
			&cli.StringFlag{Name: "cover", Usage: "Path to the cover image"},
		},
		Action: r.Add,
	}
}

// listCommand prints the library
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List library tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "Filter by title/artist substring"},
			&cli.BoolFlag{Name: "csv", Usage: "Output CSV"},
			&cli.BoolFlag{Name: "markdown", Usage: "Output a Markdown table"},
			&cli.BoolFlag{Name: "json", Usage: "Output pretty JSON"},
		},
		Action: r.List,
	}
}

// updateCommand merges partial changes into a track
func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update track metadata and/or replace payloads",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Track ID", Required: true},
			&cli.StringFlag{Name: "title", Usage: "New title"},
			&cli.StringFlag{Name: "artist", Usage: "New artist"},
			&cli.StringFlag{Name: "description", Usage: "New description"},
			&cli.StringFlag{Name: "category", Usage: "New category"},
			&cli.StringFlag{Name: "audio", Usage: "Replacement audio file"},
			&cli.StringFlag{Name: "cover", Usage: "Replacement cover image"},
		},
		Action: r.Update,
	}
}

// deleteCommand removes a track and its payloads
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Delete a track (idempotent)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Track ID", Required: true},
		},
		Action: r.Delete,
	}
}

// playCommand plays one track to completion
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a track through the speaker",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Track ID", Required: true},
		},
		Action: r.Play,
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and play the library interactively",
		Action: r.TUI,
	}
}

// contentTypeFor infers a payload content type from a file name.
func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
