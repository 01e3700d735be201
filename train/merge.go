package train

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// mergeTrainingData concatenates the per-worker output files into
// training_data.txt and removes them. A worker file that is missing (its
// worker died before writing anything) is skipped with a warning rather
// than failing the merge.
func mergeTrainingData(dir string, workers int, log zerolog.Logger) error {
	var merged, err = os.OpenFile(mergedFileName(dir),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("train: open merged file: %w", err)
	}
	defer merged.Close()

	for i := 0; i < workers; i++ {
		var name = workerFileName(dir, i)
		var part, err = os.Open(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skip-worker-file")
			continue
		}
		_, err = io.Copy(merged, part)
		part.Close()
		if err != nil {
			return fmt.Errorf("train: merge %v: %w", name, err)
		}
		if err = os.Remove(name); err != nil {
			return fmt.Errorf("train: remove %v: %w", name, err)
		}
		log.Info().Str("file", name).Msg("merged-worker-file")
	}
	return nil
}
