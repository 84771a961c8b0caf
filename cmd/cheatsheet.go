package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/cheatsheet"
)

func newCheatsheetCmd() *cobra.Command {
	var (
		copyAll bool
		raw     bool
		width   int
	)
	c := &cobra.Command{
		Use:   "cheatsheet",
		Short: "Generate the take-home consultation script",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.participant(cmd.Context())
			if err != nil {
				return err
			}

			cs, outcome, err := cheatsheet.Generate(cmd.Context(), e.client, u.ParticipantID)
			if err != nil {
				e.log.Warn("cheatsheet generation failed, showing default", zap.Error(err))
			}
			stderr := cmd.ErrOrStderr()
			fmt.Fprintln(stderr, outcome.Message())

			md := cheatsheet.Markdown(cs)
			out := md
			if !raw {
				style := "notty"
				if f, ok := cmd.OutOrStdout().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
					style = ""
				}
				if out, err = cheatsheet.Render(md, width, style); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if copyAll {
				if err := cheatsheet.Copy(cs); err != nil {
					return fmt.Errorf("%s: %w", cheatsheet.CopyFailed, err)
				}
				fmt.Fprintln(stderr, cheatsheet.CopiedMessage)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&copyAll, "copy", false, "Also copy the whole script to the clipboard")
	c.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	c.Flags().IntVar(&width, "width", 80, "Wrap width of the rendered script")
	return c
}
