package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pms-portfolio/ecas-parser/client"
	"github.com/pms-portfolio/ecas-parser/config"
	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ecas-parser",
		Short:         "Parse NSDL/CDSL/CAMS consolidated account statements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newDetectCmd(), newBlocksCmd(), newReturnsCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var password, issuer, source string
	var memberID int64

	cmd := &cobra.Command{
		Use:   "parse <statement.pdf>",
		Short: "Extract normalized holdings from a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if source == "" {
				source = filepath.Base(args[0])
			}

			cfg := config.LoadConfig()
			if int64(len(data)) > cfg.MaxFileSize {
				return fmt.Errorf("%s exceeds the %d MB statement size limit", args[0], cfg.MaxFileSize/(1024*1024))
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			req := &dto.ParseRequest{
				Document:   data,
				Password:   password,
				Issuer:     dto.IssuerType(issuer),
				SourceFile: source,
			}
			if memberID > 0 {
				req.MemberID = &memberID
			}

			svc := service.NewECASService(service.NewPDFProcessor(), logger)
			result, err := svc.ProcessDocument(context.Background(), req, service.NewBatch())
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "statement password, if encrypted")
	cmd.Flags().StringVarP(&issuer, "issuer", "i", "", "statement issuer: NSDL, CDSL or CAMS")
	cmd.Flags().StringVarP(&source, "source", "s", "", "source file label (defaults to the file name)")
	cmd.Flags().Int64Var(&memberID, "member", 0, "family member id to tag holdings with")
	cobra.CheckErr(cmd.MarkFlagRequired("issuer"))
	return cmd
}

func newDetectCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "detect <statement.pdf>",
		Short: "Detect the statement issuer from content markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text, err := service.NewPDFProcessor().ExtractText(data, password)
			if err != nil {
				return err
			}
			issuer, ok := service.DetectIssuer(text)
			if !ok {
				return fmt.Errorf("no issuer markers found")
			}
			fmt.Fprintln(cmd.OutOrStdout(), issuer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "statement password, if encrypted")
	return cmd
}

// newBlocksCmd dumps the position-tagged blocks a statement decomposes
// into. Useful when a new statement revision stops matching and the block
// layout needs eyeballing.
func newBlocksCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "blocks <statement.pdf>",
		Short: "Dump positioned text blocks for layout debugging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			blocks, err := service.NewPDFProcessor().ExtractBlocks(data, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, blocks)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "statement password, if encrypted")
	return cmd
}

func newReturnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "returns <isin>",
		Short: "Fetch trailing returns for a scheme ISIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			mc := client.NewMorningstarClient(cfg.MorningstarBaseURL, cfg.MorningstarAccessCode, cfg.HTTPTimeout)

			returns, err := mc.FetchTrailingReturns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if returns == nil {
				return fmt.Errorf("no return data for %s", args[0])
			}
			return printJSON(cmd, returns)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
