package render

import (
	"bytes"
	"context"
	"fmt"
	"image/gif"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/pveierland/project-euler-offline/internal/fetch"
	"github.com/pveierland/project-euler-offline/internal/model"
)

// Retriever supplies resource bytes by site-relative path.
// *fetch.Fetcher implements it.
type Retriever interface {
	Retrieve(ctx context.Context, urlPath string, opts fetch.Options) ([]byte, error)
}

// Materializer downloads the resources a document references into the
// output tree and rewrites statement markup where the typesetting engine
// needs a different form, such as animation frame sequences for GIFs.
type Materializer struct {
	retriever  Retriever
	outputDir  string
	convertBin string
	logger     *slog.Logger
	written    map[string]bool
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithConvertBinary selects the ImageMagick binary used for GIF
// conversion.
func WithConvertBinary(bin string) MaterializerOption {
	return func(m *Materializer) {
		if bin != "" {
			m.convertBin = bin
		}
	}
}

// WithMaterializerLogger sets the logger for resource progress.
func WithMaterializerLogger(logger *slog.Logger) MaterializerOption {
	return func(m *Materializer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMaterializer creates a Materializer writing under outputDir.
func NewMaterializer(retriever Retriever, outputDir string, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		retriever:  retriever,
		outputDir:  outputDir,
		convertBin: "convert",
		logger:     slog.New(slog.DiscardHandler),
		written:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MaterializeProblems downloads every image and data file the problems
// reference and rewrites statement markup in place where needed. It
// returns the image resources and the basenames of embedded data files.
// Resources shared between problems are written once.
func (m *Materializer) MaterializeProblems(ctx context.Context, problems []*model.Problem, opts fetch.Options) ([]model.ResourceInfo, []string, error) {
	var resources []model.ResourceInfo
	var embedded []string

	for _, p := range problems {
		for _, att := range p.Attachments {
			switch att.Kind {
			case model.AttachmentImage:
				info, err := m.image(ctx, p, att.URLPath, opts)
				if err != nil {
					return nil, nil, err
				}
				if info != nil {
					resources = append(resources, *info)
				}
			case model.AttachmentDataFile:
				name, err := m.dataFile(ctx, att.URLPath, opts)
				if err != nil {
					return nil, nil, err
				}
				if name != "" {
					embedded = append(embedded, name)
				}
			case model.AttachmentAbout:
				// About pages become appendix sections, not files.
			}
		}
	}
	return resources, embedded, nil
}

// image downloads one image into the output tree at its site-relative
// path. GIFs are converted for the engine: multi-frame GIFs become PNG
// frame sequences shown with \animategraphics, single-frame GIFs become
// plain PNGs.
func (m *Materializer) image(ctx context.Context, p *model.Problem, urlPath string, opts fetch.Options) (*model.ResourceInfo, error) {
	first := !m.written[urlPath]

	data, err := m.retriever.Retrieve(ctx, urlPath, opts)
	if err != nil {
		return nil, err
	}

	localPath := filepath.Join(m.outputDir, filepath.FromSlash(urlPath))
	if first {
		if err := writeFile(localPath, data); err != nil {
			return nil, err
		}
		m.written[urlPath] = true
	}

	if !strings.HasSuffix(urlPath, ".gif") {
		if !first {
			return nil, nil
		}
		return &model.ResourceInfo{URLPath: urlPath, LocalPath: localPath, FrameCount: 1}, nil
	}

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", urlPath, err)
	}
	frames := len(anim.Image)

	if frames > 1 {
		prefix := strings.TrimSuffix(localPath, ".gif") + "-"
		if first {
			if err := m.explodeGIF(ctx, localPath, prefix); err != nil {
				return nil, err
			}
		}
		ref := fmt.Sprintf(`\animategraphics[autoplay,loop]{%d}{%s}{0}{%d}`,
			frameRate(anim), strings.TrimSuffix(urlPath, ".gif")+"-", frames-1)
		p.LaTeX = strings.ReplaceAll(p.LaTeX, `\includegraphics{`+urlPath+`}`, ref)
	} else {
		pngPath := strings.TrimSuffix(localPath, ".gif") + ".png"
		if first {
			if err := m.convert(ctx, localPath, pngPath); err != nil {
				return nil, err
			}
		}
		p.LaTeX = strings.ReplaceAll(p.LaTeX,
			`\includegraphics{`+urlPath+`}`,
			`\includegraphics{`+strings.TrimSuffix(urlPath, ".gif")+".png}")
	}

	if !first {
		return nil, nil
	}
	return &model.ResourceInfo{URLPath: urlPath, LocalPath: localPath, FrameCount: frames}, nil
}

// dataFile downloads one data file into the output directory root under
// its basename, which is how \textattachfile references it.
func (m *Materializer) dataFile(ctx context.Context, urlPath string, opts fetch.Options) (string, error) {
	if m.written[urlPath] {
		return "", nil
	}

	data, err := m.retriever.Retrieve(ctx, urlPath, opts)
	if err != nil {
		return "", err
	}

	name := path.Base(urlPath)
	if err := writeFile(filepath.Join(m.outputDir, name), data); err != nil {
		return "", err
	}
	m.written[urlPath] = true
	return name, nil
}

// explodeGIF renders a multi-frame GIF as a numbered PNG sequence.
// Coalescing expands inter-frame deltas into full frames so each PNG
// stands alone.
func (m *Materializer) explodeGIF(ctx context.Context, gifPath, prefix string) error {
	m.logger.Debug("exploding animation",
		slog.String("gif", gifPath))

	cmd := exec.CommandContext(ctx, m.convertBin,
		"-coalesce", "-despeckle", gifPath, prefix+"%d.png")
	if output, err := cmd.CombinedOutput(); err != nil {
		return commandError(cmd.Args, output, err)
	}
	return nil
}

// convert renders a single-frame GIF as a PNG.
func (m *Materializer) convert(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, m.convertBin, src, dst)
	if output, err := cmd.CombinedOutput(); err != nil {
		return commandError(cmd.Args, output, err)
	}
	return nil
}

// frameRate derives frames per second from the GIF's first frame delay,
// given in hundredths of a second. Degenerate delays fall back to a
// moderate rate.
func frameRate(anim *gif.GIF) int {
	if len(anim.Delay) == 0 || anim.Delay[0] <= 0 {
		return 10
	}
	fps := 100 / anim.Delay[0]
	if fps < 1 {
		return 1
	}
	if fps > 50 {
		return 50
	}
	return fps
}

// writeFile writes data, creating parent directories as needed.
func writeFile(localPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0750); err != nil {
		return fmt.Errorf("render: create resource dir: %w", err)
	}
	if err := os.WriteFile(localPath, data, 0640); err != nil {
		return fmt.Errorf("render: write resource: %w", err)
	}
	return nil
}
