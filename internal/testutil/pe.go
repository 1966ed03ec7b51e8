package testutil

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	peHeaderOffset   = 0x40
	peFileAlignment  = 0x200
	peSectAlignment  = 0x1000
	peSizeOfHeaders  = 0x200
	peTextSize       = 0x200
	peImageBase      = 0x400000
	peDOSLfanewField = 0x3C
)

// MinimalPE returns a 32-bit PE image with a single .text section and no
// resource section. The header area leaves room for one more section
// header.
func MinimalPE() []byte {
	var b bytes.Buffer

	dos := make([]byte, peHeaderOffset)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[peDOSLfanewField:], peHeaderOffset)
	b.Write(dos)
	b.Write([]byte{'P', 'E', 0, 0})

	opt := pe.OptionalHeader32{
		Magic:                       0x10b,
		SizeOfCode:                  peTextSize,
		AddressOfEntryPoint:         peSectAlignment,
		BaseOfCode:                  peSectAlignment,
		ImageBase:                   peImageBase,
		SectionAlignment:            peSectAlignment,
		FileAlignment:               peFileAlignment,
		MajorOperatingSystemVersion: 4,
		MajorSubsystemVersion:       4,
		SizeOfImage:                 2 * peSectAlignment,
		SizeOfHeaders:               peSizeOfHeaders,
		Subsystem:                   pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
		SizeOfStackReserve:          0x100000,
		SizeOfStackCommit:           0x1000,
		SizeOfHeapReserve:           0x100000,
		SizeOfHeapCommit:            0x1000,
		NumberOfRvaAndSizes:         16,
	}
	file := pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		NumberOfSections:     1,
		SizeOfOptionalHeader: uint16(binary.Size(opt)),
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_32BIT_MACHINE,
	}
	text := pe.SectionHeader32{
		Name:             [8]uint8{'.', 't', 'e', 'x', 't'},
		VirtualSize:      peTextSize,
		VirtualAddress:   peSectAlignment,
		SizeOfRawData:    peTextSize,
		PointerToRawData: peSizeOfHeaders,
		Characteristics:  pe.IMAGE_SCN_CNT_CODE | pe.IMAGE_SCN_MEM_EXECUTE | pe.IMAGE_SCN_MEM_READ,
	}

	// bytes.Buffer writes cannot fail.
	_ = binary.Write(&b, binary.LittleEndian, &file)
	_ = binary.Write(&b, binary.LittleEndian, &opt)
	_ = binary.Write(&b, binary.LittleEndian, &text)
	b.Write(make([]byte, peSizeOfHeaders-b.Len()))

	code := make([]byte, peTextSize)
	code[0] = 0xC3 // ret
	b.Write(code)
	return b.Bytes()
}

// WritePE writes MinimalPE to dir/name and returns the path.
func WritePE(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, MinimalPE(), 0o755); err != nil {
		t.Fatalf("write pe fixture: %v", err)
	}
	return path
}

// PESections returns the section names of the PE image at path.
func PESections(t testing.TB, path string) []string {
	t.Helper()
	f, err := pe.Open(path)
	if err != nil {
		t.Fatalf("open pe %s: %v", path, err)
	}
	defer f.Close()
	names := make([]string, 0, len(f.Sections))
	for _, s := range f.Sections {
		names = append(names, s.Name)
	}
	return names
}
