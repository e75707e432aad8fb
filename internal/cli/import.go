package cli

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/goliatone/go-formblock/pkg/sheet"
)

func (c *CLI) newImportSheetCommand() *cobra.Command {
	var (
		sheetName string
		style     string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "import-sheet <workbook.xlsx>",
		Short: "Convert a spreadsheet into an authored form block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() {
				err = multierr.Append(err, file.Close())
			}()

			payload, err := sheet.FromWorkbook(file, sheetName)
			if err != nil {
				return err
			}
			if _, err := sheet.Fields(payload); err != nil {
				return err
			}
			markup, err := blockMarkup(payload, style, cmd.Flags().Changed("style"))
			if err != nil {
				return err
			}
			return writeOutput(output, cmd.OutOrStdout(), markup)
		},
	}
	cmd.Flags().StringVar(&sheetName, "sheet", "", "sheet to import (first sheet if empty)")
	cmd.Flags().StringVar(&style, "style", "", "style directive path to author above the payload")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (stdout if empty)")
	return cmd
}

// blockMarkup renders the authored block: an optional style row followed by
// the row holding the doubly-encoded payload.
func blockMarkup(payload sheet.Payload, style string, withStyle bool) ([]byte, error) {
	encoded, err := sheet.Encode(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="form">`)
	if withStyle {
		buf.WriteString(`<div><div>style: `)
		buf.WriteString(html.EscapeString(style))
		buf.WriteString(`</div></div>`)
	}
	buf.WriteString(`<div><div><pre><code>`)
	buf.WriteString(html.EscapeString(encoded))
	buf.WriteString("</code></pre></div></div></div>\n")
	return buf.Bytes(), nil
}
