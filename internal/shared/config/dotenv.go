package config

import "github.com/joho/godotenv"

// loadEnvFiles loads the given files if they exist. Variables already set in
// the environment win over file values; missing files are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}
