package main

const Version = "v0.1.0"
