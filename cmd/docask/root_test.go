package main

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docask/docask/internal/domain"
	"github.com/docask/docask/internal/repository/docs"
	"github.com/docask/docask/internal/usecase/answer"
	"github.com/docask/docask/internal/usecase/retrieval"
)

type fixedEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (f *fixedEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vecs[text]}, nil
}

type recordingGenerator struct {
	reply    string
	calls    int
	lastUser string
}

func (r *recordingGenerator) Generate(_ context.Context, _, user string) (string, error) {
	r.calls++
	r.lastUser = user
	return r.reply, nil
}

func unitVec(cos float64) []float32 {
	return []float32{float32(cos), float32(math.Sqrt(1 - cos*cos))}
}

func writeDoc(t *testing.T, dir, name, data string) {
	t.Helper()
	content := `{"data": "` + data + `"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestApp(t *testing.T, dir string, queryEmb, docEmb retrieval.Embedder, gen answer.Generator) *app {
	t.Helper()
	logger := zap.NewNop()
	return &app{
		loader:    docs.NewLoader(dir, logger),
		retriever: retrieval.New(queryEmb, docEmb, logger),
		answerer:  answer.New(gen, logger),
		logger:    logger,
	}
}

func execute(t *testing.T, a *app, question string) string {
	t.Helper()
	cmd := NewRootCmd("test", a)

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(question + "\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestRun_AnswersFromRelevantDocumentOnly(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.json", "A")
	writeDoc(t, dir, "b.json", "B")
	writeDoc(t, dir, "c.json", "C")

	queryEmb := &fixedEmbedder{vecs: map[string][]float32{"q": {1, 0}}}
	docEmb := &fixedEmbedder{vecs: map[string][]float32{
		"A": unitVec(0.2),
		"B": unitVec(0.9),
		"C": unitVec(0.3),
	}}
	gen := &recordingGenerator{reply: "It is B."}

	out := execute(t, newTestApp(t, dir, queryEmb, docEmb, gen), "q")

	assert.Contains(t, out, questionPrompt)
	assert.Contains(t, out, "It is B.")
	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastUser, "Context:\nB\n\n", "context must be built from B only")
	assert.NotContains(t, gen.lastUser, "Context:\nA")
	assert.NotContains(t, gen.lastUser, "\nC\n")
}

func TestRun_NoRelevantDocumentsSkipsGeneration(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.json", "A")
	writeDoc(t, dir, "b.json", "B")

	queryEmb := &fixedEmbedder{vecs: map[string][]float32{"q": {1, 0, 0, 0}}}
	docEmb := &fixedEmbedder{vecs: map[string][]float32{
		"A": {0.2, 1, 0, 0},
		"B": {1, 1, 1, 1}, // cosine is exactly 0.5: excluded by the strict threshold
	}}
	gen := &recordingGenerator{reply: "never"}

	out := execute(t, newTestApp(t, dir, queryEmb, docEmb, gen), "q")

	assert.Contains(t, out, noRelevantDocsMsg)
	assert.Zero(t, gen.calls, "generation must not run without relevant documents")
}

func TestRun_QueryEmbeddingFailureReportsNoDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.json", "A")

	queryEmb := &fixedEmbedder{err: errors.New("provider down")}
	docEmb := &fixedEmbedder{vecs: map[string][]float32{"A": unitVec(0.9)}}
	gen := &recordingGenerator{reply: "never"}

	out := execute(t, newTestApp(t, dir, queryEmb, docEmb, gen), "q")

	assert.Contains(t, out, noRelevantDocsMsg)
	assert.Zero(t, gen.calls)
}

func TestRun_MissingDocumentsDirFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	a := newTestApp(t, dir, &fixedEmbedder{}, &fixedEmbedder{}, &recordingGenerator{})

	cmd := NewRootCmd("test", a)
	cmd.SetIn(strings.NewReader("q\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestPromptQuestion(t *testing.T) {
	var out bytes.Buffer

	q, err := promptQuestion(strings.NewReader("what is up?\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "what is up?", q)
	assert.Equal(t, questionPrompt, out.String())
}

func TestPromptQuestion_EOFWithoutNewline(t *testing.T) {
	q, err := promptQuestion(strings.NewReader("no newline"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "no newline", q)
}

func TestPromptQuestion_EmptyInput(t *testing.T) {
	_, err := promptQuestion(strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}
