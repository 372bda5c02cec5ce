package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gopxl/beep"

	"chosenoffset.com/lookingback/internal/audio"
	"chosenoffset.com/lookingback/internal/config"
	"chosenoffset.com/lookingback/internal/game"
	ebitenrender "chosenoffset.com/lookingback/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "lookingback.yaml", "path to the settings file")
	startScene := flag.String("scene", "", "scene to start in (debug)")
	mute := flag.Bool("mute", false, "disable audio")
	debug := flag.Bool("debug", false, "show the scene overlay")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if *startScene != "" {
		cfg.Game.StartScene = *startScene
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if *debug {
		cfg.Game.Debug = true
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	sound, closeAudio := newSound(cfg.Audio)
	defer closeAudio()

	manager, err := game.NewManager(game.Options{
		Renderer: renderer,
		Input:    inputMgr,
		Sound:    sound,
		Config:   cfg,
	})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetFullscreen(cfg.Window.Fullscreen)
	engine.SetTPS(cfg.Game.TPS)

	log.Println("Starting game...")
	if err := engine.RunGame(manager); err != nil {
		log.Fatal(err)
	}
}

// newSound builds the synthesizer. Any failure to open the device leaves
// the game running without sound.
func newSound(cfg config.AudioConfig) (*audio.Composer, func()) {
	if !cfg.Enabled {
		log.Println("Audio disabled")
		return audio.NewSilentComposer(), func() {}
	}

	mixer := audio.NewMixer(beep.SampleRate(cfg.SampleRate), cfg.MasterVolume)
	mixer.SetGain(audio.Music, cfg.MusicVolume)
	mixer.SetGain(audio.SFX, cfg.SFXVolume)

	output, err := audio.NewOutput(mixer, time.Duration(cfg.BufferMS)*time.Millisecond)
	if err != nil {
		log.Printf("Warning: audio unavailable, continuing silently: %v", err)
		return audio.NewSilentComposer(), func() {}
	}

	composer := audio.NewComposer(mixer, audio.WallClock{}, output, time.Now().UnixNano())
	composer.SetMusicGain(cfg.MusicVolume)
	return composer, func() {
		if err := output.Close(); err != nil {
			log.Printf("Warning: failed to close audio: %v", err)
		}
	}
}
