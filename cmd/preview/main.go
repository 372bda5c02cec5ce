package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"

	"chosenoffset.com/lookingback/internal/audio"
	"chosenoffset.com/lookingback/internal/textures"
)

func main() {
	outDir := flag.String("out", "preview", "output directory")
	seed := flag.Int64("seed", 1, "texture seed")
	columns := flag.Int("columns", 4, "contact sheet columns")
	rate := flag.Int("rate", 44100, "WAV sample rate")
	song := flag.String("song", "", "render only this song's loop (default: every song)")
	noSongs := flag.Bool("no-songs", false, "skip the WAV files")
	flag.Parse()

	var songs []string
	switch {
	case *noSongs:
	case *song != "":
		songs = []string{*song}
	default:
		songs = audio.SongKeys()
	}

	fmt.Println("Looking Back Asset Preview")
	fmt.Println("==========================")
	fmt.Println()

	if err := run(*outDir, *seed, *columns, beep.SampleRate(*rate), songs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done!")
}

func run(outDir string, seed int64, columns int, rate beep.SampleRate, songs []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	imgs := textures.Generate(rand.New(rand.NewSource(seed)))
	sheet := filepath.Join(outDir, "textures.png")
	if err := textures.SavePNG(textures.ContactSheet(imgs, columns), sheet); err != nil {
		return err
	}
	fmt.Printf("  %-12s %d textures -> %s\n", "textures", len(imgs), sheet)

	for _, key := range songs {
		path := filepath.Join(outDir, key+".wav")
		if err := bounce(path, key, rate); err != nil {
			return err
		}
		fmt.Printf("  %-12s -> %s\n", key, path)
	}
	return nil
}

func bounce(path, key string, rate beep.SampleRate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := audio.Bounce(f, key, rate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
