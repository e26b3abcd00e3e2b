// Command pitch-track prints the detected pitch of a monophonic recording,
// one line per analysis window.
//
// Usage:
//
//	pitch-track voice.wav
//	pitch-track -min E2 -max E5 -decimation 4 voice.mp3
//	pitch-track -csv voice.ogg > pitch.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	pitch "github.com/tphakala/go-audio-pitch"
	"github.com/tphakala/go-audio-pitch/internal/audiofile"
)

const minRequiredArgs = 1

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(stdout io.Writer) error {
	minNote := flag.String("min", "A2", "Lowest detectable note (name or cents from A4)")
	maxNote := flag.String("max", "A6", "Highest detectable note (name or cents from A4)")
	overlap := flag.Float64("overlap", pitch.DefaultOverlap, "Window overlap fraction in [0, 1)")
	decimation := flag.Int("decimation", pitch.DefaultDecimation, "Downsample by this factor before analysis")
	asCSV := flag.Bool("csv", false, "Write CSV instead of a table")
	all := flag.Bool("all", false, "Include windows without a detected note")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	input, rate, err := audiofile.ReadMono(args[0])
	if err != nil {
		return err
	}

	cfg := pitch.DefaultConfig(float64(rate))
	if cfg.MinNote, err = pitch.ParseNote(*minNote); err != nil {
		return fmt.Errorf("bad -min: %w", err)
	}
	if cfg.MaxNote, err = pitch.ParseNote(*maxNote); err != nil {
		return fmt.Errorf("bad -max: %w", err)
	}
	cfg.Overlap = *overlap
	cfg.Decimation = *decimation

	if *verbose {
		log.Printf("Input: %s (%d Hz, %d samples)", args[0], rate, len(input))
		log.Printf("Range: %v to %v, decimation %d", cfg.MinNote, cfg.MaxNote, max(1, cfg.Decimation))
	}

	frames, err := pitch.TrackMono(input, cfg)
	if err != nil {
		return err
	}
	if !*all {
		frames = voicedOnly(frames)
	}

	if *asCSV {
		return writeCSV(stdout, frames, float64(rate))
	}
	return writeTable(stdout, frames, float64(rate))
}

func voicedOnly(frames []pitch.Frame) []pitch.Frame {
	out := frames[:0]
	for _, f := range frames {
		if f.HasNote {
			out = append(out, f)
		}
	}
	return out
}

func writeTable(w io.Writer, frames []pitch.Frame, rate float64) error {
	if _, err := fmt.Fprintf(w, "%10s  %-8s  %10s  %8s\n", "time (s)", "note", "freq (Hz)", "clarity"); err != nil {
		return err
	}
	for _, f := range frames {
		note, hz := "-", "-"
		if f.HasNote {
			note = f.Note.String()
			hz = strconv.FormatFloat(f.Note.Hz(), 'f', 2, 64)
		}
		if _, err := fmt.Fprintf(w, "%10.3f  %-8s  %10s  %8.3f\n", f.Time(rate), note, hz, f.Clarity); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, frames []pitch.Frame, rate float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "note", "cents", "hz", "period", "clarity"}); err != nil {
		return err
	}
	for _, f := range frames {
		record := []string{
			strconv.FormatFloat(f.Time(rate), 'f', 4, 64),
			"", "", "",
			strconv.FormatFloat(f.Period, 'f', 3, 64),
			strconv.FormatFloat(f.Clarity, 'f', 4, 64),
		}
		if f.HasNote {
			record[1] = f.Note.Name()
			record[2] = strconv.FormatFloat(float64(f.Note), 'f', 1, 64)
			record[3] = strconv.FormatFloat(f.Note.Hz(), 'f', 2, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
