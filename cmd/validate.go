package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaoapp/mongoverify/document"
	"github.com/yaoapp/mongoverify/validation"
)

var documentFile string
var rulesFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: L("Validate a document against rules"),
	Long:  L("Validate a document against rules"),
	RunE: func(cmd *cobra.Command, args []string) error {
		Boot()

		doc, err := readDocument(documentFile)
		if err != nil {
			return err
		}

		rules, err := readRules(rulesFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		validator := validation.NewValidator(nil)
		for _, rule := range rules {
			if err := validator.Apply(doc, rule); err != nil {
				fmt.Fprintf(out, "%s %s\n", color.RedString("FAIL"), rule)
				fmt.Fprintf(out, "     %s\n", err.Error())
				return fmt.Errorf("%s: %w", documentFile, err)
			}
			fmt.Fprintf(out, "%s %s\n", color.GreenString("PASS"), rule)
		}

		fmt.Fprintln(out, color.GreenString(L("✨DONE✨")))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&documentFile, "document", "d", "", L("Document file"))
	validateCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", L("Rules file"))
	validateCmd.MarkFlagRequired("document")
	validateCmd.MarkFlagRequired("rules")
}

// readDocument read an Extended JSON document
func readDocument(file string) (document.Document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}

// readRules read a YAML (or JSON) list of rules
func readRules(file string) ([]validation.Rule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var input interface{}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	rules, err := validation.ParseRules(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return rules, nil
}
