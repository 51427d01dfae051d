package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/commitlog/internal/logging"
	"github.com/masmgr/commitlog/internal/output"
	"github.com/urfave/cli/v2"
)

// ReplayLogCmd returns the replay_log command.
func ReplayLogCmd() *cli.Command {
	return &cli.Command{
		Name:  "replay_log",
		Usage: "Print the messages of a JSON log file, one per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"file-name", "f"},
				Usage:    "Log file written with the json log format",
				Required: true,
			},
		},
		Action: replayLogAction,
	}
}

func replayLogAction(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	_, err = output.ReplayLog(f, stdout(c), logging.MessageField)
	return err
}
