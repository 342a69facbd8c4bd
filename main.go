package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand"
	"os"
	"os/signal"

	"github.com/YLivay/seekline/log"
	"github.com/YLivay/seekline/reader"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalln(err.Error())
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return errors.New("Failed to load config: " + err.Error())
	}

	chunkSize := flag.Int("chunk", 0, "boundary scan chunk size in bytes")
	buildIndex := flag.Bool("index", false, "pre-scan the input to index every line")
	useMmap := flag.Bool("mmap", false, "memory-map the input instead of reading it")
	jqProgram := flag.String("jq", "", "jq program applied to JSON lines before display")
	seed := flag.Int64("seed", 0, "fixed seed for random jumps, 0 seeds from the clock")
	logFname := flag.String("log", "", "append debug logs to this file")
	flag.Parse()

	if *chunkSize > 0 {
		cfg.ChunkSize = *chunkSize
	}
	if *buildIndex {
		cfg.BuildIndex = true
	}
	if *useMmap {
		cfg.Mmap = true
	}
	if *jqProgram != "" {
		cfg.JQ = *jqProgram
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// The terminal is in raw mode while the screen is up, so logs either go
	// to a file or nowhere.
	if *logFname != "" {
		logFile, err := os.OpenFile(*logFname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.New("Failed to open log file: " + err.Error())
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	filename := "-"
	if flag.NArg() > 0 {
		filename = flag.Arg(0)
	}

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	cleanupOsSignals := setupOsSignals(ctx, cancelCtx)
	defer cleanupOsSignals()

	rd, cleanupReader, err := prepareReader(filename, cfg)
	if err != nil {
		return errors.New("Failed to prepare reader: " + err.Error())
	}
	defer cleanupReader()

	rd.SetChunkSize(cfg.ChunkSize)
	if cfg.Seed != 0 {
		rd.SetRand(rand.New(rand.NewSource(cfg.Seed)))
	}
	if cfg.BuildIndex {
		if err := rd.BuildIndex(); err != nil {
			return errors.New("Failed to index input: " + err.Error())
		}
	}

	format, err := newLineFormatter(cfg.JQ)
	if err != nil {
		return err
	}

	return NewApplication(rd, format).Run(ctx, cancelCtx)
}

func setupOsSignals(ctx context.Context, cancelCtx context.CancelFunc) (cleanup func()) {
	// Catch ctrl+c signal and make it close the context instead of immediately
	// exiting. This allows us to do some cleanup.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	cleanup = func() {
		signal.Stop(signalChan)
		cancelCtx()
	}

	go func() {
		select {
		case <-signalChan:
			log.Println("Ctrl+C pressed")
			cancelCtx()
		case <-ctx.Done():
		}
	}()

	return cleanup
}

// prepareReader opens filename as a line reader. "-" reads stdin, which is
// not seekable, so it is drained into a temporary file first: the reader
// captures the input's size at open time and needs all of it on disk.
func prepareReader(filename string, cfg *Config) (rd *reader.Reader, cleanup func(), err error) {
	// As resources are created in this function, accumulate functions to clean
	// them up in this slice.
	var deferredCleanups []func()
	cleanup = func() {
		// Invoke deferredCleanups in reverse order.
		for i := len(deferredCleanups) - 1; i >= 0; i-- {
			deferredCleanups[i]()
		}
	}

	path := filename
	if filename == "-" {
		log.Println("Input is not seekable, piping through a temporary file")
		tempWriter, err := os.CreateTemp("", "seekline.tmp")
		if err != nil {
			return nil, nil, errors.New("Failed to create temporary file: " + err.Error())
		}

		path = tempWriter.Name()
		log.Println("Using temporary file:", path)
		deferredCleanups = append(deferredCleanups, func() {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Println("Failed to remove temporary file:", err)
			}
		})

		_, copyErr := io.Copy(tempWriter, os.Stdin)
		closeErr := tempWriter.Close()
		if copyErr != nil {
			cleanup()
			return nil, nil, errors.New("Failed to copy input to temporary file: " + copyErr.Error())
		}
		if closeErr != nil {
			cleanup()
			return nil, nil, errors.New("Failed to close temporary file: " + closeErr.Error())
		}
	}

	if cfg.Mmap {
		rd, err = reader.OpenMapped(path)
	} else {
		rd, err = reader.Open(path)
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	deferredCleanups = append(deferredCleanups, func() {
		if err := rd.Close(); err != nil {
			log.Println("Failed to close reader:", err)
		}
	})

	return rd, cleanup, nil
}
