package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pveierland/project-euler-offline/internal/fetch"
	"github.com/pveierland/project-euler-offline/internal/model"
)

// mapRetriever serves resource bytes from memory.
type mapRetriever map[string][]byte

func (m mapRetriever) Retrieve(_ context.Context, urlPath string, _ fetch.Options) ([]byte, error) {
	data, ok := m[urlPath]
	if !ok {
		return nil, errors.New("no such resource: " + urlPath)
	}
	return data, nil
}

// encodeGIF builds a small in-memory GIF with the given frame count.
func encodeGIF(t *testing.T, frames int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for range frames {
		anim.Image = append(anim.Image, image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9))
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

// fakeConvert writes a stand-in ImageMagick binary that logs its arguments.
func fakeConvert(t *testing.T, logPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "convert.sh")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %s\n", logPath)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake convert: %v", err)
	}
	return path
}

func imageProblem(id int, urlPath string) *model.Problem {
	return &model.Problem{
		ID:          id,
		LaTeX:       `\includegraphics{` + urlPath + `}`,
		Attachments: []model.Attachment{{Kind: model.AttachmentImage, URLPath: urlPath}},
	}
}

// TestMaterializeImages tests image download and placement.
func TestMaterializeImages(t *testing.T) {
	t.Parallel()

	t.Run("png lands at its site relative path", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		retriever := mapRetriever{"resources/images/0015.png": []byte("png-bytes")}
		m := NewMaterializer(retriever, out)

		p := imageProblem(15, "resources/images/0015.png")
		resources, embedded, err := m.MaterializeProblems(context.Background(), []*model.Problem{p}, fetch.Options{})
		if err != nil {
			t.Fatalf("MaterializeProblems failed: %v", err)
		}
		if len(embedded) != 0 {
			t.Errorf("embedded = %v", embedded)
		}
		if len(resources) != 1 || resources[0].FrameCount != 1 {
			t.Fatalf("resources = %+v", resources)
		}

		data, err := os.ReadFile(filepath.Join(out, "resources", "images", "0015.png"))
		if err != nil {
			t.Fatalf("resource not written: %v", err)
		}
		if string(data) != "png-bytes" {
			t.Errorf("resource content = %q", data)
		}
		if p.LaTeX != `\includegraphics{resources/images/0015.png}` {
			t.Errorf("statement rewritten unexpectedly: %q", p.LaTeX)
		}
	})

	t.Run("shared image is written once", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		retriever := mapRetriever{"resources/images/shared.png": []byte("x")}
		m := NewMaterializer(retriever, out)

		problems := []*model.Problem{
			imageProblem(1, "resources/images/shared.png"),
			imageProblem(2, "resources/images/shared.png"),
		}
		resources, _, err := m.MaterializeProblems(context.Background(), problems, fetch.Options{})
		if err != nil {
			t.Fatalf("MaterializeProblems failed: %v", err)
		}
		if len(resources) != 1 {
			t.Errorf("resources = %+v", resources)
		}
	})

	t.Run("animated gif becomes a frame sequence", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		logPath := filepath.Join(out, "convert.log")
		retriever := mapRetriever{"resources/images/0208_robot.gif": encodeGIF(t, 3)}
		m := NewMaterializer(retriever, out, WithConvertBinary(fakeConvert(t, logPath)))

		p := imageProblem(208, "resources/images/0208_robot.gif")
		resources, _, err := m.MaterializeProblems(context.Background(), []*model.Problem{p}, fetch.Options{})
		if err != nil {
			t.Fatalf("MaterializeProblems failed: %v", err)
		}
		if len(resources) != 1 || resources[0].FrameCount != 3 {
			t.Fatalf("resources = %+v", resources)
		}

		want := `\animategraphics[autoplay,loop]{10}{resources/images/0208_robot-}{0}{2}`
		if p.LaTeX != want {
			t.Errorf("statement = %q, want %q", p.LaTeX, want)
		}

		log, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("convert not invoked: %v", err)
		}
		if !strings.Contains(string(log), "-coalesce") {
			t.Errorf("convert args = %q", log)
		}
	})

	t.Run("single frame gif becomes a png", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		logPath := filepath.Join(out, "convert.log")
		retriever := mapRetriever{"resources/images/0026.gif": encodeGIF(t, 1)}
		m := NewMaterializer(retriever, out, WithConvertBinary(fakeConvert(t, logPath)))

		p := imageProblem(26, "resources/images/0026.gif")
		if _, _, err := m.MaterializeProblems(context.Background(), []*model.Problem{p}, fetch.Options{}); err != nil {
			t.Fatalf("MaterializeProblems failed: %v", err)
		}
		if p.LaTeX != `\includegraphics{resources/images/0026.png}` {
			t.Errorf("statement = %q", p.LaTeX)
		}
		if _, err := os.Stat(logPath); err != nil {
			t.Errorf("convert not invoked: %v", err)
		}
	})

	t.Run("missing resource aborts", func(t *testing.T) {
		t.Parallel()

		m := NewMaterializer(mapRetriever{}, t.TempDir())
		p := imageProblem(1, "resources/images/absent.png")
		_, _, err := m.MaterializeProblems(context.Background(), []*model.Problem{p}, fetch.Options{})
		if err == nil {
			t.Fatal("expected error for missing resource")
		}
	})
}

// TestMaterializeDataFiles tests embedded data file placement.
func TestMaterializeDataFiles(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	retriever := mapRetriever{"resources/documents/0022_names.txt": []byte("MARY,PATRICIA")}
	m := NewMaterializer(retriever, out)

	p := &model.Problem{
		ID: 22,
		Attachments: []model.Attachment{
			{Kind: model.AttachmentDataFile, URLPath: "resources/documents/0022_names.txt"},
			{Kind: model.AttachmentAbout, URLPath: "about=benchmark"},
		},
	}
	resources, embedded, err := m.MaterializeProblems(context.Background(), []*model.Problem{p}, fetch.Options{})
	if err != nil {
		t.Fatalf("MaterializeProblems failed: %v", err)
	}
	if len(resources) != 0 {
		t.Errorf("resources = %+v", resources)
	}
	if len(embedded) != 1 || embedded[0] != "0022_names.txt" {
		t.Fatalf("embedded = %v", embedded)
	}

	data, err := os.ReadFile(filepath.Join(out, "0022_names.txt"))
	if err != nil {
		t.Fatalf("data file not written: %v", err)
	}
	if string(data) != "MARY,PATRICIA" {
		t.Errorf("data file content = %q", data)
	}
}
