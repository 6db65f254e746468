package main

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charithe/notation/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"gopkg.in/alecthomas/kingpin.v2"
)

const maxLineBytes = 1 << 20

var (
	app = kingpin.New("Calculator CLI", "Prefix and infix notation calculator CLI")

	addr        = app.Flag("addr", "Server address").Default("localhost:8080").String()
	insecure    = app.Flag("insecure", "Trust unknown CAs").Bool()
	plaintext   = app.Flag("plaintext", "Use unencrypted connection").Bool()
	timeout     = app.Flag("timeout", "Timeout of each remote evaluation").Default("5s").Duration()
	dialTimeout = app.Flag("dial_timeout", "Timeout for connecting to the server").Default("10s").Duration()

	prefixCmd  = app.Command("prefix", "Evaluate a prefix expression, e.g. + 1 * 2 3")
	prefixExpr = prefixCmd.Arg("expr", "Expression (space separated)").Required().Strings()

	infixCmd  = app.Command("infix", "Evaluate a fully parenthesized infix expression, e.g. ( 1 + 2 )")
	infixExpr = infixCmd.Arg("expr", "Expression (space separated)").Required().Strings()

	replCmd      = app.Command("repl", "Evaluate expressions read line by line from stdin")
	replNotation = replCmd.Flag("notation", "Notation of the expressions").Default("prefix").Enum("prefix", "infix")
	replLocal    = replCmd.Flag("local", "Evaluate in-process instead of calling the server").Bool()
)

// evalFunc evaluates one expression.
type evalFunc func(ctx context.Context, n calculator.Notation, expression string) (calculator.Number, error)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case prefixCmd.FullCommand():
		doBatch(calculator.Prefix, *prefixExpr)
	case infixCmd.FullCommand():
		doBatch(calculator.Infix, *infixExpr)
	case replCmd.FullCommand():
		doREPL()
	}
}

func doBatch(n calculator.Notation, tokens []string) {
	client, err := createClient()
	if err != nil {
		log.Printf("Failed to connect to server: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := client.Evaluate(ctx, n, strings.Join(tokens, " "))
	if err != nil {
		log.Printf("Evaluation failed: %s", errorText(err))
		os.Exit(1)
	}

	fmt.Println(result)
}

func doREPL() {
	n, err := calculator.ParseNotation(*replNotation)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	eval := evalFunc(func(_ context.Context, n calculator.Notation, expression string) (calculator.Number, error) {
		return calculator.Evaluate(n, expression)
	})

	if !*replLocal {
		client, err := createClient()
		if err != nil {
			log.Printf("Failed to connect to server: %v", err)
			os.Exit(1)
		}
		defer client.Close()
		eval = client.Evaluate
	}

	fmt.Printf("Type 'exit' to end program.\n")

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for scanner.Scan() {
			lines <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			log.Printf("Failed to read input: %v", err)
		}
	}()

	for line := range lines {
		if line == "exit" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		result, err := eval(ctx, n, line)
		cancel()

		if err != nil {
			fmt.Printf("Failed to evaluate expression: %s\n", errorText(err))
			continue
		}
		fmt.Printf("The result of evaluating expression %s in %s notation is %s.\n", line, n, result)
	}
}

// errorText strips the gRPC status decoration from remote errors.
func errorText(err error) string {
	if s, ok := status.FromError(err); ok {
		return s.Message()
	}
	return err.Error()
}

func createClient() (*calculator.Client, error) {
	var dialOpts []grpc.DialOption
	if *plaintext {
		dialOpts = append(dialOpts, grpc.WithInsecure())
	} else {
		tlsConf := &tls.Config{
			InsecureSkipVerify: *insecure,
		}
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConf)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *dialTimeout)
	defer cancel()

	return calculator.Dial(ctx, *addr, dialOpts...)
}
