// Command hashpw prints the bcrypt hash of each password given on the
// command line. Useful for seeding accounts directly in the database.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password> [password...]")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher()
	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
