package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"holdem-server/internal/config"
	"holdem-server/pkg/model"
)

var command = flag.String("c", "users", "specifies the command (users, reward, role, return-stacks)")
var userID = flag.String("id", "", "the user id")
var amount = flag.Int64("amount", 0, "the reward amount")
var role = flag.String("role", "", "the new role (PLAYER or MODERATOR)")
var yes = flag.Bool("y", false, "do not ask for confirmation")

func main() {
	flag.Parse()
	ctx := context.Background()

	switch *command {
	case "users":
		users, err := model.GetUsers(ctx, 0, 100)
		if err != nil {
			logrus.WithError(err).Fatal("could not get users")
		}

		for _, u := range users {
			fmt.Printf("%-12s %-10s %10d %s\n", u.ID, u.Role, u.PlayMoney, u.Name)
		}
	case "reward":
		user := mustGetUser(ctx)
		if !confirm(fmt.Sprintf("Give %d play money to %s", *amount, user.Name)) {
			os.Exit(1)
		}

		user, err := model.Reward(ctx, user.ID, *amount)
		if err != nil {
			logrus.WithError(err).Fatal("could not reward user")
		}

		fmt.Printf("%s now has %d play money\n", user.Name, user.PlayMoney)
	case "role":
		user := mustGetUser(ctx)
		newRole := model.Role(strings.ToUpper(*role))
		if !confirm(fmt.Sprintf("Change the role of %s from %s to %s", user.Name, user.Role, newRole)) {
			os.Exit(1)
		}

		user, err := model.SetRole(ctx, user.ID, newRole, config.Instance().Telegram.AdminID)
		if err != nil {
			logrus.WithError(err).Fatal("could not change role")
		}

		fmt.Printf("%s is now a %s\n", user.Name, user.Role)
	case "return-stacks":
		if !confirm("Return every table stack to play money (only safe while the server is stopped)") {
			os.Exit(1)
		}

		n, err := model.ReturnTableStacks(ctx)
		if err != nil {
			logrus.WithError(err).Fatal("could not return table stacks")
		}

		fmt.Printf("Returned the table stacks of %d users\n", n)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func mustGetUser(ctx context.Context) *model.User {
	if *userID == "" {
		logrus.Fatal("-id is required")
	}

	user, err := model.GetUserByID(ctx, *userID)
	if err != nil {
		logrus.WithError(err).WithField("id", *userID).Fatal("could not get user")
	}

	return user
}

// confirm asks a yes/no question
// Without a terminal the -y flag is required
func confirm(question string) bool {
	if *yes {
		return true
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		_, _ = fmt.Fprintln(os.Stderr, "stdin is not a terminal, use -y to confirm")
		return false
	}

	answer, err := getInput(question + " (y/N)")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	return answer != "" && strings.ToLower(answer)[0] == 'y'
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
