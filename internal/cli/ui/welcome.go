package ui

import (
	"fmt"
	"io"
)

// PrintWelcome выводит приветствие
func PrintWelcome(w io.Writer, cvPath, ledgerPath string) {
	fmt.Fprintln(w, ColorBold+IconBriefcase+" Job Agent"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Поиск стажировок по резюме: Chromium + OpenAI"+ColorReset)
	fmt.Fprintf(w, ColorGray+"Резюме: %s"+ColorReset+"\n", cvPath)
	fmt.Fprintf(w, ColorGray+"Вакансии: %s"+ColorReset+"\n", ledgerPath)
	fmt.Fprintln(w)
	PrintHelp(w)
	fmt.Fprintln(w, ColorGray+"⬆️ ⬇️"+ColorReset+" Используйте стрелки для навигации по истории команд")
	fmt.Fprintln(w)
}

// PrintHelp выводит список доступных команд
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, ColorYellow+IconList+" Доступные команды:"+ColorReset)
	fmt.Fprintln(w, "  "+ColorGreen+"search"+ColorReset+" <компания>  - Найти и сохранить вакансии компании")
	fmt.Fprintln(w, "  "+ColorGreen+"jobs"+ColorReset+"                - Сохраненные вакансии")
	fmt.Fprintln(w, "  "+ColorGreen+"cv"+ColorReset+"                  - Прочитанное резюме")
	fmt.Fprintln(w, "  "+ColorGreen+"runs"+ColorReset+"                - Последние запуски")
	fmt.Fprintln(w, "  "+ColorGreen+"show"+ColorReset+" <id>           - Шаги запуска")
	fmt.Fprintln(w, "  "+ColorGreen+"clear"+ColorReset+"               - Очистить экран")
	fmt.Fprintln(w, "  "+ColorGreen+"exit"+ColorReset+"                - Выход")
	fmt.Fprintln(w)
}
