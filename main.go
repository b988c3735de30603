package main

import (
	_ "time/tzdata"

	"github.com/Tiliavir/campus-timetable/cmd"
)

func main() {
	cmd.Execute()
}
