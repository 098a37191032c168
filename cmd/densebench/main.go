// Command densebench times densemap against a balanced tree and a hash map.
package main

func main() {
	Execute()
}
