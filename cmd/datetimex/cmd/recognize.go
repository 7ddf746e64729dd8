package cmd

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/recognizer"
	"github.com/hrygo/datetimex/plugin/datetime/timeout"
	"github.com/hrygo/datetimex/server/timezone"
)

type recognizeOutput struct {
	Text          string                 `json:"text"`
	Culture       string                 `json:"culture"`
	ReferenceTime string                 `json:"reference_time"`
	Results       []datetime.ModelResult `json:"results"`
}

func newRecognizeCmd(a *app) *cobra.Command {
	var (
		ref    string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "recognize [text...]",
		Short: "Recognize temporal expressions in text",
		Long: `Recognize temporal expressions and print them as JSON.

The arguments are joined into one text. Without arguments every line of
standard input is recognized on its own and printed as one JSON document.`,
		Example: `  datetimex recognize "call me tomorrow at 5pm"
  datetimex recognize --ref 2024-01-15T10:00:00Z "3 days ago"
  cat notes.txt | datetimex recognize --timezone Europe/Berlin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := a.profile.Location()
			refTime, err := timezone.ParseReference(ref, loc)
			if err != nil {
				return err
			}
			model, err := recognizer.New(a.profile.Culture, a.profile.Options(a.logger))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			emit := func(text string) error {
				if n := len([]rune(text)); n > timeout.MaxTextLength {
					return errors.Errorf("text has %d characters, at most %d allowed", n, timeout.MaxTextLength)
				}
				results := model.Parse(text, refTime)
				if results == nil {
					results = []datetime.ModelResult{}
				}
				return enc.Encode(recognizeOutput{
					Text:          text,
					Culture:       model.Culture(),
					ReferenceTime: refTime.Format(time.RFC3339),
					Results:       results,
				})
			}

			if len(args) > 0 {
				return emit(strings.Join(args, " "))
			}
			return eachLine(cmd.InOrStdin(), emit)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "reference time, RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]] (default now)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

// eachLine calls fn for every non-blank line of r.
func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "read input")
}
