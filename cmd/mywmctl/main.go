// Command mywmctl is a thin control-socket client: it sends one protocol
// line per invocation and prints the reply, or streams the async event
// feed with `mywmctl subscribe`.
package main

func main() {
	Execute()
}
