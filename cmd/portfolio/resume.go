package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/jonathan/dev-portfolio/internal/observability"
)

var (
	resumeOutput  string
	resumeQuiet   bool
	resumeSummary bool
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Work with the configured resume document",
}

var resumeParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Download and parse the resume, printing JSON",
	Args:  cobra.NoArgs,
	RunE:  runResumeParse,
}

var resumeURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the resolved .docx download URL",
	Args:  cobra.NoArgs,
	RunE:  runResumeURL,
}

var resumeDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Save the resume .docx to a file",
	Args:  cobra.NoArgs,
	RunE:  runResumeDownload,
}

func init() {
	resumeParseCmd.Flags().BoolVar(&resumeSummary, "summary", false, "Print a readable summary instead of JSON")
	resumeDownloadCmd.Flags().StringVarP(&resumeOutput, "out", "o", "", "Path to write the .docx to (required)")
	resumeDownloadCmd.Flags().BoolVarP(&resumeQuiet, "quiet", "q", false, "Do not show a progress bar")
	_ = resumeDownloadCmd.MarkFlagRequired("out")

	resumeCmd.AddCommand(resumeParseCmd, resumeURLCmd, resumeDownloadCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeParse(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	r, err := a.Resolver()
	if err != nil {
		return err
	}

	doc, err := r.Parse(cmd.Context())
	if err != nil {
		return err
	}
	if resumeSummary {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResume(doc)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), doc)
}

func runResumeURL(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	r, err := a.Resolver()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), r.DownloadURL())
	return err
}

func runResumeDownload(cmd *cobra.Command, _ []string) (err error) {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	r, err := a.Resolver()
	if err != nil {
		return err
	}

	body, size, err := r.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to download resume: %w", err)
	}
	defer func() { _ = body.Close() }()

	out, err := os.Create(resumeOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(resumeOutput)
		}
	}()

	var src io.Reader = body
	if !resumeQuiet {
		bar := pb.Full.New(0).
			Set(pb.Bytes, true).
			SetWriter(cmd.ErrOrStderr())
		if size > 0 {
			bar.SetTotal(size)
		}
		bar.Start()
		defer bar.Finish()
		src = bar.NewProxyReader(body)
	}

	n, err := io.Copy(out, src)
	if err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", n, resumeOutput)
	return nil
}
