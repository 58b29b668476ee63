package main

import (
	"bufio"
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/chipqc"
	"github.com/carbocation/pfx"
)

// writeOutput opens path, buffers the writes and reports an error from any
// of the write, flush or close steps. A gs:// object only exists once Close
// succeeds.
func writeOutput(ctx context.Context, path string, client *storage.Client, write func(io.Writer) error) error {
	f, err := chipqc.CreateOutput(ctx, path, client)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}
