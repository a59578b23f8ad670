package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/presentation/tui"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidContact = errors.New("contact form is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate (and optionally submit) contact form values",
	Long: `Runs every field rule of the contact form over the given values and prints
one line per field. Values come from flags named after the field ids, or from a
YAML/JSON file with --file. With --submit a valid form is sent to the form action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		values, err := contactValues(cmd, cfg.Form)
		if err != nil {
			return err
		}
		submit, _ := cmd.Flags().GetBool("submit")

		b, err := openBackend(cfg, logger, "")
		if err != nil {
			return err
		}
		defer b.close()

		return runValidate(cmd.Context(), newService(cfg, logger, b, nil), values, submit, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "YAML or JSON file with field values")
	validateCmd.Flags().Bool("submit", false, "Submit the form when it is valid")
	for _, id := range []string{"name", "email", "phone", "goals", "experience", "service", "message"} {
		validateCmd.Flags().String(id, "", "Value of the "+id+" field")
	}
}

// contactValues merges the --file values with the per-field flags; flags win.
func contactValues(cmd *cobra.Command, spec domain.FormSpec) (map[string]string, error) {
	values := map[string]string{}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read values: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	for _, f := range spec.Fields {
		flag := cmd.Flags().Lookup(f.ID)
		if flag != nil && flag.Changed {
			values[f.ID] = flag.Value.String()
		}
	}
	return values, nil
}

func runValidate(ctx context.Context, svc *fitlanding.Service, values map[string]string, submit bool, w io.Writer) error {
	var (
		res *fitlanding.ContactResult
		err error
	)
	if submit {
		res, err = svc.SubmitContact(ctx, values)
	} else {
		res, err = svc.ValidateContact(ctx, values)
	}
	if res == nil {
		return err
	}

	fmt.Fprint(w, tui.FieldReport(reportFields(res.Fields)))
	switch {
	case res.Banner != "":
		fmt.Fprintln(w, tui.Failure(res.Banner))
		return err
	case !res.Valid:
		fmt.Fprintln(w, tui.Faint("first invalid field: "+res.FirstInvalid))
		return errInvalidContact
	case submit:
		fmt.Fprintln(w, tui.Success("submitted to "+svc.Spec().Action))
	}
	return err
}

func reportFields(results []fitlanding.FieldResult) []domain.FormField {
	fields := make([]domain.FormField, 0, len(results))
	for _, r := range results {
		fields = append(fields, domain.FormField{
			FieldSpec: domain.FieldSpec{ID: r.ID},
			Validity:  r.Validity,
			Message:   r.Message,
		})
	}
	return fields
}
