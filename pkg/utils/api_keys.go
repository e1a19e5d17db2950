package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// GenerateRandomKey mints an API key with a recognizable prefix.
func GenerateRandomKey() (string, error) {
	id, err := gonanoid.New(32)
	if err != nil {
		return "", err
	}
	return "vk_" + id, nil
}
