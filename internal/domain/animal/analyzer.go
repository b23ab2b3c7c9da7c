package animal

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/matiasleandrokruk/inferlab/internal/infra/llm"
	"github.com/matiasleandrokruk/inferlab/internal/infra/metrics"
)

const metricsMode = "animal"

// ImagesSubdir is where animal images live under the data root, one
// directory per animal.
const ImagesSubdir = "imatges/animals"

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Analyzer sends images to one vision model and normalizes the replies.
type Analyzer struct {
	client llm.InferenceClient
	model  string
}

// NewAnalyzer returns an Analyzer that sends images for model through client.
func NewAnalyzer(client llm.InferenceClient, model string) *Analyzer {
	return &Analyzer{client: client, model: model}
}

// AnalyzeEncoded runs the extraction prompt on one base64-encoded image.
// Inference failures become inference-error entries.
func (a *Analyzer) AnalyzeEncoded(ctx context.Context, encoded, filename string) Entry {
	raw, err := a.client.Infer(ctx, a.model, Prompt, encoded)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"file":    filename,
			"outcome": llm.Outcome(err),
		}).Warn("animal inference failed")
		return a.count(ErrorEntry(filename, ReasonInference))
	}

	entry := Normalize(raw, filename)
	if entry.Failed() {
		log.WithField("file", filename).Warn("reply is not a JSON object")
	}
	return a.count(entry)
}

// AnalyzeImage reads and encodes the file at path, then analyzes it.
// Read failures become read-error entries.
func (a *Analyzer) AnalyzeImage(ctx context.Context, path string) Entry {
	filename := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("file", path).Warn("cannot read image")
		return a.count(ErrorEntry(filename, ReasonRead))
	}
	log.WithFields(log.Fields{
		"file":  path,
		"bytes": len(data),
	}).Info("processing image")
	return a.AnalyzeEncoded(ctx, base64.StdEncoding.EncodeToString(data), filename)
}

// AnalyzeDir walks the animal directories under root in name order and
// analyzes every image in them, one at a time. dirLimit > 0 stops after that
// many directories. Files in root and files without an image extension are
// skipped. Only an unreadable root or a cancelled ctx stop the run; the batch
// collected so far is returned with the error.
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string, dirLimit int) (*Batch, error) {
	batch := &Batch{}

	dirs, err := os.ReadDir(root)
	if err != nil {
		return batch, fmt.Errorf("read image root %s: %w", root, err)
	}

	processed := 0
	for _, d := range dirs {
		if dirLimit > 0 && processed == dirLimit {
			break
		}
		dirPath := filepath.Join(root, d.Name())
		if !d.IsDir() {
			log.WithField("path", dirPath).Debug("skipping non-directory")
			continue
		}
		processed++

		files, err := os.ReadDir(dirPath)
		if err != nil {
			log.WithError(err).WithField("dir", dirPath).Warn("cannot list animal directory")
			batch.Append(a.count(ErrorEntry(d.Name(), ReasonRead)))
			continue
		}
		// os.ReadDir returns entries sorted by name.
		for _, f := range files {
			if !f.Type().IsRegular() || !IsImage(f.Name()) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return batch, err
			}
			batch.Append(a.AnalyzeImage(ctx, filepath.Join(dirPath, f.Name())))
		}
	}

	log.WithFields(log.Fields{
		"entries":  batch.Len(),
		"failures": batch.Failures(),
		"dirs":     processed,
	}).Info("animal analysis finished")
	return batch, nil
}

func (a *Analyzer) count(e Entry) Entry {
	label := "ok"
	if e.Failed() {
		label = e.Error
	}
	metrics.NormalizedTotal.WithLabelValues(metricsMode, label).Inc()
	return e
}
