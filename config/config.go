package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Camera CameraConfig
	Audio  AudioConfig
	Synth  SynthConfig
}

type CameraConfig struct {
	Device       int
	TickMillis   int
	AnalysisSize int
}

type AudioConfig struct {
	Backend      string
	SampleRate   int
	PeriodFrames int
	Channels     int
}

type SynthConfig struct {
	BarSeconds   float64
	SubBeats     int
	DelaySeconds float64
	ObjectCap    int
	PopChance    float64
	Seed         int64
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		Camera: CameraConfig{
			Device:       getEnvInt("CAMERA_DEVICE", 0),
			TickMillis:   getEnvInt("CAMERA_TICK_MS", 50),
			AnalysisSize: getEnvInt("CAMERA_ANALYSIS_SIZE", 160),
		},
		Audio: AudioConfig{
			Backend:      getEnvString("AUDIO_BACKEND", "portaudio"),
			SampleRate:   getEnvInt("SAMPLE_RATE", 44100),
			PeriodFrames: getEnvInt("PERIOD_FRAMES", 1024),
			Channels:     getEnvInt("CHANNELS", 2),
		},
		Synth: SynthConfig{
			BarSeconds:   getEnvFloat("BAR_SECONDS", 4.0),
			SubBeats:     getEnvInt("SUB_BEATS", 6),
			DelaySeconds: getEnvFloat("DELAY_SECONDS", 0.35),
			ObjectCap:    getEnvInt("OBJECT_CAP", 8),
			PopChance:    getEnvFloat("POP_CHANCE", 0.05),
			Seed:         getEnvInt64("SEED", 1),
		},
	}, nil
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
