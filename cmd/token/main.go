// token emite un JWT de operador para la API usando JWT_SECRET de la configuración.
//
// Uso:
//
//	go run ./cmd/token -user ana@empresa.com.br -role analista [-exp 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/recupera-monofasico/pkg/config"
	"github.com/jhoicas/recupera-monofasico/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del operador")
	role := flag.String("role", jwt.RoleAnalista, "admin | analista | consulta")
	exp := flag.Int("exp", 0, "expiración en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no definido")
		os.Exit(1)
	}
	if *user == "" {
		fmt.Fprintln(os.Stderr, "-user es obligatorio")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleAnalista, jwt.RoleConsulta:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido %q\n", *role)
		os.Exit(2)
	}

	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
