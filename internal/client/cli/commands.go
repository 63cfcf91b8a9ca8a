package cli

import (
	"context"
	"fmt"
)

// Run выполняет одну команду. Ошибка возвращается вызывающему,
// код выхода процесса решает main.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "pull":
		return c.runPull(ctx)
	case "announce":
		return c.runAnnounce(ctx, args)
	case "checklist":
		return c.runChecklist(ctx, args)
	case "equipment":
		return c.runEquipment(ctx, args)
	case "repair":
		return c.runRepair(ctx, args)
	case "mileage":
		return c.runMileage(ctx, args)
	case "suggest":
		return c.runSuggest(ctx, args)
	case "timeoff":
		return c.runTimeOff(ctx, args)
	case "buyback":
		return c.runBuyback(ctx, args)
	case "playbooks":
		return c.runPlaybooks(ctx)
	case "training":
		return c.runTraining(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// subcommand возвращает первый аргумент или значение по умолчанию
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 {
		return def, nil
	}
	return args[0], args[1:]
}
