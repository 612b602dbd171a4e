package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DevNF/nfplugboleto/internal/usecase"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "nfplugboleto",
		Short:   "Client for batch boleto issuance, settlement files and printing",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file")

	rootCmd.AddCommand(emitirCmd())
	rootCmd.AddCommand(retornoCmd())
	rootCmd.AddCommand(imprimirCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func emitirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emitir",
		Short: "Submit a batch of titles for issuance",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("arquivo")
			titles, err := readTitles(path)
			if err != nil {
				return err
			}

			result, err := svc.Submit(cmd.Context(), titles)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("arquivo", "a", "", "JSON file with the titles to submit")
	cmd.MarkFlagRequired("arquivo")

	return cmd
}

func retornoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retorno",
		Short: "Process a settlement (return) file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("arquivo")
			layout, _ := cmd.Flags().GetString("layout")

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read return file %s: %w", path, err)
			}

			result, err := svc.ProcessReturnFile(cmd.Context(), string(content), layout)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringP("arquivo", "a", "", "Settlement file to process")
	cmd.Flags().StringP("layout", "l", "400", "Settlement layout version (240 or 400)")
	cmd.MarkFlagRequired("arquivo")

	return cmd
}

func imprimirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imprimir",
		Short: "Materialize a print job for already issued titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			ids, _ := cmd.Flags().GetStringSlice("ids")
			mode, _ := cmd.Flags().GetString("modo")
			out, _ := cmd.Flags().GetString("saida")

			artifact, err := svc.Print(cmd.Context(), usecase.PrintRequest{
				IntegrationIDs: ids,
				Mode:           mode,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, artifact, 0o644); err != nil {
				return fmt.Errorf("could not write artifact to %s: %w", out, err)
			}
			fmt.Printf("artifact written to %s (%d bytes)\n", out, len(artifact))
			return nil
		},
	}

	cmd.Flags().StringSlice("ids", nil, "Integration identifiers of the titles to print")
	cmd.Flags().String("modo", "pdf", "Artifact mode")
	cmd.Flags().StringP("saida", "o", "boletos.pdf", "Output file for the artifact")
	cmd.MarkFlagRequired("ids")

	return cmd
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
