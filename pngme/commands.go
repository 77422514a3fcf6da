package pngme

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/flaneur2020/pngme/pngme/logger"
	"github.com/flaneur2020/pngme/pngme/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultOutputFile is where Encode writes when no output path is given.
const DefaultOutputFile = "edited.png"

// ProgressCallback is called while a file is written to report progress
// current: bytes written so far
// total: total file size
type ProgressCallback func(current int64, total int64)

// EncodeArgs hides Message in a new chunk of type ChunkType.
type EncodeArgs struct {
	FilePath   string
	ChunkType  string
	Message    string
	OutputFile string
	Compress   bool
}

// DecodeArgs looks up the first chunk of type ChunkType.
type DecodeArgs struct {
	FilePath   string
	ChunkType  string
	Compressed bool
}

// RemoveArgs deletes the first chunk of type ChunkType in place.
type RemoveArgs struct {
	FilePath  string
	ChunkType string
}

// PrintArgs lists every chunk of each file.
type PrintArgs struct {
	FilePaths []string
}

// Commands implements the encode, decode, remove and print operations on
// PNG files held in a Storage.
type Commands struct {
	storage  storage.Storage
	out      io.Writer
	errOut   io.Writer
	progress ProgressCallback
}

func NewCommands(s storage.Storage, out, errOut io.Writer) *Commands {
	return &Commands{
		storage: s,
		out:     out,
		errOut:  errOut,
	}
}

// WithProgress returns a copy of c that reports write progress to progress.
func (c *Commands) WithProgress(progress ProgressCallback) *Commands {
	cp := *c
	cp.progress = progress
	return &cp
}

// Encode appends a message chunk and writes the result to args.OutputFile.
func (c *Commands) Encode(ctx context.Context, args EncodeArgs) error {
	chunkType, err := ChunkTypeFromString(args.ChunkType)
	if err != nil {
		return err
	}
	png, err := c.load(ctx, args.FilePath)
	if err != nil {
		return err
	}

	data := []byte(args.Message)
	if args.Compress {
		data, err = CompressMessage(data)
		if err != nil {
			return err
		}
		logger.Info("compressed message from %d to %d bytes", len(args.Message), len(data))
	}
	chunk := NewChunk(chunkType, data)
	png.AppendChunk(chunk)

	output := args.OutputFile
	if output == "" {
		output = DefaultOutputFile
	}
	if err := c.save(ctx, output, png); err != nil {
		return err
	}
	logger.Info("added %s chunk (%d bytes, crc %d) to %s", chunkType, chunk.Length(), chunk.CRC(), output)
	return nil
}

// Decode prints the first chunk of the requested type. A missing chunk is
// reported on the error writer and is not an error.
func (c *Commands) Decode(ctx context.Context, args DecodeArgs) error {
	png, err := c.load(ctx, args.FilePath)
	if err != nil {
		return err
	}

	chunk := png.ChunkByType(args.ChunkType)
	if chunk == nil {
		fmt.Fprintf(c.errOut, "Chunk Type: %s not found\n", args.ChunkType)
		return nil
	}
	fmt.Fprint(c.out, chunk)

	if args.Compressed {
		msg, err := DecompressMessage(chunk.Data())
		if err != nil {
			logger.Warn("%s chunk payload is not compressed: %v", args.ChunkType, err)
			return nil
		}
		chunk = NewChunk(chunk.Type(), msg)
	}
	msg, err := chunk.DataAsString()
	if err != nil {
		logger.Warn("%s chunk payload is not text: %v", args.ChunkType, err)
		return nil
	}
	fmt.Fprintf(c.out, "Message: %s\n", msg)
	return nil
}

// Remove deletes the first chunk of the requested type and rewrites the file.
func (c *Commands) Remove(ctx context.Context, args RemoveArgs) error {
	png, err := c.load(ctx, args.FilePath)
	if err != nil {
		return err
	}
	if err := png.RemoveChunk(args.ChunkType); err != nil {
		return err
	}
	if err := c.save(ctx, args.FilePath, png); err != nil {
		return err
	}
	logger.Info("removed %s chunk from %s", args.ChunkType, args.FilePath)
	return nil
}

// Print decodes every file concurrently and prints them in argument order.
func (c *Commands) Print(ctx context.Context, args PrintArgs) error {
	pngs := make([]*Png, len(args.FilePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range args.FilePaths {
		i, path := i, path
		g.Go(func() error {
			png, err := c.load(gctx, path)
			if err != nil {
				return err
			}
			pngs[i] = png
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, png := range pngs {
		if len(pngs) > 1 {
			fmt.Fprintf(c.out, "== %s\n", args.FilePaths[i])
		}
		fmt.Fprint(c.out, png)
		fmt.Fprintf(c.out, "Digest: %s\n", png.Digest())
	}
	return nil
}

func (c *Commands) load(ctx context.Context, path string) (*Png, error) {
	r, err := c.storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	png, err := ReadPng(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logger.Info("decoded %s: %d chunks", path, len(png.Chunks()))
	return png, nil
}

func (c *Commands) save(ctx context.Context, path string, png *Png) error {
	data := png.Bytes()
	w, err := c.storage.Create(ctx, path)
	if err != nil {
		return err
	}

	var src io.Reader = bytes.NewReader(data)
	if c.progress != nil {
		src = &progressReader{
			reader:   src,
			total:    int64(len(data)),
			callback: c.progress,
		}
	}
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Close()
}

// progressReader wraps an io.Reader to report write progress
type progressReader struct {
	reader   io.Reader
	total    int64
	current  int64
	callback ProgressCallback
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.current += int64(n)
	if pr.callback != nil {
		pr.callback(pr.current, pr.total)
	}
	return n, err
}
