package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cardtable/cardlang/pkg/compiler/lexer"
	"github.com/cardtable/cardlang/pkg/compiler/parser"
	"github.com/cardtable/cardlang/pkg/game"
)

func main() {
	fmt.Println("cardlang interpreter")

	var current *game.Game
	input := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !input.Scan() {
			break
		}

		fields := strings.Fields(input.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit":
			return

		case "build":
			if g := buildGame(fields); g != nil {
				current = g
			}

		case "start":
			if current == nil {
				fmt.Println("no game loaded")
				continue
			}
			current.Start()

		case "move":
			if current == nil {
				fmt.Println("no game loaded")
				continue
			}
			if len(fields) < 2 {
				fmt.Println("no player specified in move")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Printf("'%s' is not a player number\n", fields[1])
				continue
			}
			current.PlayerMove(n)

		case "show":
			if current == nil {
				fmt.Println("no game loaded")
				continue
			}
			fmt.Println(current.Show(strings.Join(fields[1:], " ")))

		default:
			fmt.Println("unrecognised command")
		}
	}
}

func buildGame(fields []string) *game.Game {
	if len(fields) < 2 {
		fmt.Println("no source file specified in build")
		return nil
	}

	source, err := os.ReadFile(fields[1])
	if err != nil {
		fmt.Printf("unable to read '%s'\n", fields[1])
		return nil
	}

	tokens, err := lexer.Lex(string(source))
	if err != nil {
		fmt.Println(err)
		return nil
	}

	statements, err := parser.Parse(tokens)
	if err != nil {
		fmt.Println(err)
		return nil
	}

	fmt.Println("Game loaded")
	return game.New(statements)
}
