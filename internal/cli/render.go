package cli

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formblock"
	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/vanilla"
)

const aemPage = `<!DOCTYPE html><html><head></head><body><main><div class="form"></div></main></body></html>`

func (c *CLI) newRenderCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render [page.html]",
		Short: "Decorate every form block in an HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			page, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			options, err := c.decoratorOptions(cmd)
			if err != nil {
				return err
			}
			out, err := formblock.DecorateHTML(cmd.Context(), page, options...)
			if out == nil {
				return err
			}
			if err != nil {
				c.logger.Warn("some form blocks were not decorated", zap.Error(err))
			}
			return writeOutput(output, cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (stdout if empty)")
	return cmd
}

func (c *CLI) newAEMCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "aem [definition.json]",
		Short: "Render an Adaptive Form definition into a standalone page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			def, err := adaptiveform.Decode(data)
			if err != nil {
				return err
			}
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(aemPage)))
			if err != nil {
				return fmt.Errorf("parse page shell: %w", err)
			}
			options, err := c.decoratorOptions(cmd)
			if err != nil {
				return err
			}
			if _, err := decorator.New(options...).Decorate(cmd.Context(), decorator.Request{
				Document:   doc,
				Block:      doc.Find("div.form").First(),
				Definition: &def,
			}); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := html.Render(&buf, doc.Get(0)); err != nil {
				return fmt.Errorf("render page: %w", err)
			}
			return writeOutput(output, cmd.OutOrStdout(), buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (stdout if empty)")
	return cmd
}

func (c *CLI) decoratorOptions(cmd *cobra.Command) ([]decorator.Option, error) {
	options := []decorator.Option{
		decorator.WithLogger(c.logger),
		decorator.WithBlockSelector(c.cfg.BlockSelector),
		decorator.WithBasePath(c.basePathProvider(cmd)),
	}
	if c.cfg.TemplatesDir != "" {
		renderer, err := vanilla.New(vanilla.WithTemplatesDir(c.cfg.TemplatesDir))
		if err != nil {
			return nil, err
		}
		registry := render.NewRegistry()
		registry.MustRegister(renderer)
		options = append(options, decorator.WithRegistry(registry))
	}
	return options, nil
}
