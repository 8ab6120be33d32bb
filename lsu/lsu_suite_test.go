package lsu_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLsu(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LSU Suite")
}
