// Command client is the interactive terminal front end for the auction
// server. It performs one authentication attempt per connection and retries
// on a fresh connection, since the server closes after a failed attempt.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"auction-service/internal/auditlog"
	"auction-service/internal/protocol"
)

const maxAuthAttempts = 3

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "auction server address")
	logFile := flag.String("log", "client_log.txt", "client audit log file")
	flag.Parse()

	audit, err := auditlog.Open(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer audit.Close()

	audit.Printf("Client starting up...")

	stdin := bufio.NewScanner(os.Stdin)

	conn, reader, ok := authenticate(*addr, stdin, audit)
	if !ok {
		audit.Printf("Client shutting down")
		return
	}
	defer conn.Close()

	displayHelp()

	welcome, err := protocol.ReadBlock(reader)
	if err != nil {
		audit.Printf("Error receiving initial auction list from server")
		fmt.Fprintln(os.Stderr, "Error receiving initial auction list from server")
		return
	}
	fmt.Println(welcome)
	audit.Printf("Received initial auction list")

	commandLoop(conn, reader, stdin, audit)

	audit.Printf("Client shutting down")
	fmt.Println("Thank you for participating in the auction!")
}

// authenticate dials and runs the credential exchange, reconnecting for each
// retry. Returns the live connection after a successful attempt.
func authenticate(addr string, stdin *bufio.Scanner, audit *auditlog.Sink) (net.Conn, *bufio.Reader, bool) {
	for attempt := 1; attempt <= maxAuthAttempts; attempt++ {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			audit.Printf("Connection to server failed")
			fmt.Fprintf(os.Stderr, "Connection to server failed: %v\n", err)
			return nil, nil, false
		}

		if attempt == 1 {
			audit.Printf("Connected to the auction server")
			fmt.Println("Connected to the auction server.")
		}

		reader := bufio.NewReader(conn)

		username, ok := answerPrompt(conn, reader, stdin)
		if !ok {
			conn.Close()
			return nil, nil, false
		}
		audit.Printf("Attempt %d: Username entered: %s", attempt, username)

		if _, ok := answerPrompt(conn, reader, stdin); !ok {
			conn.Close()
			return nil, nil, false
		}

		result, err := protocol.ReadBlock(reader)
		if err != nil {
			conn.Close()
			audit.Printf("Error receiving authentication result")
			return nil, nil, false
		}
		fmt.Println(result)
		audit.Printf("Attempt %d: Authentication result: %s", attempt, result)

		if result == protocol.MsgAuthSuccess {
			audit.Printf("Authentication successful.")
			return conn, reader, true
		}

		// the server closes after one failed attempt; retry on a new connection
		conn.Close()
	}

	audit.Printf("Authentication failed after %d attempts. Disconnecting.", maxAuthAttempts)
	fmt.Println("Too many failed attempts. Disconnecting...")
	return nil, nil, false
}

// answerPrompt prints the server's prompt and sends back one line of input
func answerPrompt(conn net.Conn, reader *bufio.Reader, stdin *bufio.Scanner) (string, bool) {
	prompt, err := protocol.ReadBlock(reader)
	if err != nil {
		return "", false
	}
	fmt.Print(prompt)

	if !stdin.Scan() {
		return "", false
	}
	answer := strings.TrimSpace(stdin.Text())

	if _, err := fmt.Fprintf(conn, "%s\n", answer); err != nil {
		return "", false
	}
	return answer, true
}

func commandLoop(conn net.Conn, reader *bufio.Reader, stdin *bufio.Scanner, audit *auditlog.Sink) {
	for {
		fmt.Print("\nEnter auction ID and bid amount (or 'ls' to list current auctions, 'q' to quit): ")
		if !stdin.Scan() {
			return
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}

		if line[0] == 'q' || line[0] == 'Q' {
			audit.Printf("User initiated quit command")
			fmt.Fprintf(conn, "%s\n", line)
			return
		}

		if strings.EqualFold(line[:min(2, len(line))], "ls") {
			audit.Printf("User requested current auction list")
		} else {
			audit.Printf("Sending bid: %s", line)
		}

		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			audit.Printf("Error sending command")
			fmt.Fprintln(os.Stderr, "Error sending command to server")
			return
		}

		resp, err := protocol.ReadBlock(reader)
		if err != nil {
			audit.Printf("Server closed the connection")
			fmt.Println("Server closed the connection.")
			return
		}
		fmt.Println(resp)
		audit.Printf("Received server response: %s", resp)
	}
}

// displayHelp prints bidding instructions right after authentication
func displayHelp() {
	fmt.Println("\nBidding Instructions:")
	fmt.Println("1. Enter the auction ID and bid amount in format: <auction_id> <amount>")
	fmt.Println("2. Enter 'ls' to view the current bids of all auctions")
	fmt.Println("3. Minimum bid must be at least 20% higher than the current bid")
	fmt.Println("4. Enter 'q' to quit")
	fmt.Println()
}
