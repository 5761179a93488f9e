package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Credentials is the bot identity tuple stored in a legacy credentials file.
type Credentials struct {
	BotUsername string
	Token       string
	CreatorID   int64
}

// ReadCredentials parses a file with the bot username, token and creator id on
// the first three lines.
func ReadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() && len(lines) < 3 {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if len(lines) < 3 {
		return Credentials{}, fmt.Errorf("credentials file %s: expected 3 lines, got %d", path, len(lines))
	}
	creatorID, err := strconv.ParseInt(lines[2], 10, 64)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials file %s: invalid creator id %q: %w", path, lines[2], err)
	}
	return Credentials{
		BotUsername: lines[0],
		Token:       lines[1],
		CreatorID:   creatorID,
	}, nil
}

// Apply fills empty Telegram fields from c.
func (c Credentials) Apply(tg *TelegramConfig) {
	if tg == nil {
		return
	}
	if tg.BotUsername == "" {
		tg.BotUsername = c.BotUsername
	}
	if tg.Token == "" {
		tg.Token = c.Token
	}
	if tg.CreatorID == 0 {
		tg.CreatorID = c.CreatorID
	}
}
