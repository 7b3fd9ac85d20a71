package reprocess

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

// Runner replays archived uploads through the document services.
type Runner struct {
	archive    store.UploadArchive
	processors map[league.Kind]service.Processor
}

// NewRunner constructs a runner over the upload archive.
func NewRunner(archive store.UploadArchive, processors map[league.Kind]service.Processor) *Runner {
	return &Runner{
		archive:    archive,
		processors: processors,
	}
}

// Plan lists the uploads a JobSpec would replay, oldest first per kind.
func (r *Runner) Plan(ctx context.Context, spec JobSpec) ([]store.Upload, error) {
	kinds := spec.Kinds
	if len(kinds) == 0 {
		for _, kind := range league.Kinds() {
			if _, ok := r.processors[kind]; ok {
				kinds = append(kinds, kind)
			}
		}
	}

	var uploads []store.Upload
	for _, kind := range kinds {
		if _, ok := r.processors[kind]; !ok {
			return nil, fmt.Errorf("no processor for kind %q", kind)
		}
		batch, err := r.archive.Uploads(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s uploads: %w", kind, err)
		}
		uploads = append(uploads, batch...)
	}
	return uploads, nil
}

// Run executes the job spec, reporting progress via the Reporter if
// provided. Individual upload failures are reported, not returned.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	uploads, err := r.Plan(ctx, spec)
	if err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnJobStart(len(uploads))
	}

	for _, upload := range uploads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if spec.DryRun {
			if reporter != nil {
				reporter.OnUploadProcessed(upload.ID, upload.Kind)
			}
			continue
		}

		err := r.processors[upload.Kind].Replay(ctx, service.FromArchive(upload))
		if err != nil {
			log.Warn().Err(err).Str("upload_id", upload.ID).Str("kind", string(upload.Kind)).Msg("Reprocessing failed")
			if reporter != nil {
				reporter.OnUploadFailed(upload.ID, upload.Kind, err)
			}
			continue
		}
		if reporter != nil {
			reporter.OnUploadProcessed(upload.ID, upload.Kind)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete()
	}
	return nil
}
