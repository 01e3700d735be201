package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chesscore/searchcore/board"
	"github.com/chesscore/searchcore/search"
	"github.com/chesscore/searchcore/train"
)

const (
	engineName   = "searchcore"
	engineAuthor = "searchcore authors"
)

type protocol struct {
	hash      int
	threads   int
	tt        *search.TranspositionTable
	positions []board.Position
	training  *train.Session
	log       zerolog.Logger
	fields    []string
}

func main() {
	var hash = flag.Int("hash", 16, "transposition table size in MB")
	var threads = flag.Int("threads", 1, "training worker count")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var initPosition, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	var p = &protocol{
		hash:      *hash,
		threads:   *threads,
		tt:        search.CreateTranspositionTable(*hash),
		positions: []board.Position{initPosition},
		log:       logger,
	}
	p.run()
}

func (p *protocol) run() {
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			break
		}
		if err := p.handle(commandLine); err != nil {
			debugUci(err.Error())
		}
	}
	p.stopTraining()
}

func (p *protocol) handle(msg string) error {
	var fields = strings.Fields(msg)
	if len(fields) == 0 {
		return nil
	}
	p.fields = fields[1:]

	switch fields[0] {
	case "uci":
		return p.uciCommand()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "ucinewgame":
		search.ClearTranspositionTable(p.tt)
		return nil
	case "position":
		return p.positionCommand()
	case "go":
		return p.goCommand()
	case "train":
		return p.trainCommand()
	}
	return errors.New("command not found")
}

func debugUci(s string) {
	fmt.Println("info string " + s)
}

func (p *protocol) uciCommand() error {
	fmt.Printf("id name %s\n", engineName)
	fmt.Printf("id author %s\n", engineAuthor)
	fmt.Printf("option name Hash type spin default %v min 1 max 4096\n", p.hash)
	fmt.Printf("option name Threads type spin default %v min 1 max 32\n", p.threads)
	fmt.Println("uciok")
	return nil
}

func (p *protocol) positionCommand() error {
	var args = p.fields
	if len(args) == 0 {
		return errors.New("invalid position arguments")
	}
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if args[0] == "startpos" {
		fen = board.InitialPositionFen
	} else if args[0] == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []board.Position{pos}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			var last = positions[len(positions)-1]
			var move, ok = last.MoveFromLAN(smove)
			if !ok {
				return errors.New("parse move failed")
			}
			var child board.Position
			last.MakeMove(move, &child)
			positions = append(positions, child)
		}
	}
	p.positions = positions
	return nil
}

func (p *protocol) goCommand() error {
	var moveTime = 3 * time.Second
	for i := 0; i < len(p.fields); i++ {
		switch p.fields[i] {
		case "movetime":
			if i+1 < len(p.fields) {
				var ms, err = strconv.Atoi(p.fields[i+1])
				if err != nil {
					return err
				}
				moveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			moveTime = 0
		}
	}
	var pos = p.positions[len(p.positions)-1]
	var ctx = search.NewContext(pos, p.tt, moveTime, true)
	ctx.SetHistoryKeys(historyKeys(p.positions))
	search.SearchToTime(ctx)
	return nil
}

func (p *protocol) trainCommand() error {
	if len(p.fields) == 0 {
		return errors.New("invalid train arguments")
	}
	switch p.fields[0] {
	case "start":
		var threads = p.threads
		if len(p.fields) > 1 {
			var n, err = strconv.Atoi(p.fields[1])
			if err != nil {
				return err
			}
			threads = n
		}
		p.stopTraining()
		p.training = train.NewSession(train.Config{
			Threads:    threads,
			HashSizeMB: p.hash,
			Logger:     p.log,
		})
		return p.training.Start()
	case "stop":
		p.stopTraining()
		return nil
	}
	return errors.New("unknown train command")
}

func (p *protocol) stopTraining() {
	if p.training == nil {
		return
	}
	if err := p.training.Stop(); err != nil {
		p.log.Error().Err(err).Msg("training-stop")
	}
	p.training = nil
}

func historyKeys(positions []board.Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		result[positions[i].Key]++
		if positions[i].Rule50 == 0 {
			break
		}
	}
	return result
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
