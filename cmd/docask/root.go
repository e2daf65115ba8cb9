package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	questionPrompt    = "Ask a question: "
	noRelevantDocsMsg = "No relevant documents found."
)

// NewRootCmd builds the one-shot question/answer command.
func NewRootCmd(version string, a *app) *cobra.Command {
	return &cobra.Command{
		Use:           "docask",
		Short:         "Answer one question from a local document set",
		Long:          "docask loads a local directory of documents, ranks them against your question by embedding similarity, and answers from the top matches.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd, a)
		},
	}
}

// runAsk is the whole run: load -> prompt -> retrieve -> answer.
func runAsk(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	documents, err := a.loader.Load()
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	question, err := promptQuestion(cmd.InOrStdin(), out)
	if err != nil {
		return fmt.Errorf("read question: %w", err)
	}

	ranked := a.retriever.Retrieve(ctx, question, documents)
	if len(ranked) == 0 {
		fmt.Fprintln(out, noRelevantDocsMsg)
		return nil
	}

	for _, d := range ranked {
		a.logger.Debug("Relevant document",
			zap.String("filename", d.Filename),
			zap.Float64("score", d.Score),
		)
	}

	fmt.Fprintln(out, a.answerer.Answer(ctx, question, ranked))
	return nil
}

// promptQuestion reads one line from in. The reader is scoped to this
// single exchange, so every exit path leaves the input handle released.
func promptQuestion(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, questionPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		// EOF after some input still carries a valid last line.
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}

	return strings.TrimSpace(line), nil
}
